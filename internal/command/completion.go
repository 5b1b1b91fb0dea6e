// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/meta"
)

const bashCompletionScript = `# bash completion for apidiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_apidiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "report compare completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --exclude -x --fail-on --filter -f --ignore-file -i --min-severity -m --no-summary --output -o --padding --profile --region --sort -s --titles -t"

    case "$cmd" in
        report)
            local opts="$common --format"
            ;;
        compare)
            local opts="$common"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --fail-on|--min-severity|-m|--exclude|-x)
            COMPREPLY=( $(compgen -W "info warning error" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "auto json yaml" -- "$cur") )
            return 0
            ;;
        --ignore-file|-i)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Positional inputs are files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _apidiff apidiff
`

const zshCompletionScript = `#compdef apidiff

_apidiff() {
  local -a cmds
  cmds=(
    'report:aggregate a recorded difference stream'
    'compare:compare two JSON API surfaces'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-x --exclude)'{-x,--exclude}'[severities to exclude]:severities'
  '--fail-on[fail at or above severity]:severity:(info warning error)'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-i --ignore-file)'{-i,--ignore-file}'[ignore rules file]:file:_files'
  '(-m --min-severity)'{-m,--min-severity}'[minimum severity]:severity:(info warning error)'
  '--no-summary[omit summary line]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '--padding[column padding]:padding'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'apidiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    report)
      _arguments -C \
        $common \
        '--format[input stream format]:format:(auto json yaml)' \
        '::input:_files'
      ;;
    compare)
      _arguments -C \
        $common \
        ':old:_files' \
        ':new:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _apidiff apidiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	w := m.Out
	if w == nil {
		w = os.Stdout
	}

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: apidiff completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "apidiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
