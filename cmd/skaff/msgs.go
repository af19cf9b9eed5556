package main

const rootLong = `skaff generates concrete project trees from parameterized templates.

A template is a directory with a .scaffold.toml descriptor declaring
metadata, excluded paths, lifecycle hooks, and typed parameters. skaff
collects parameter values, renders every path and file through its
templating engine, and writes the result to a target directory.`

const newLong = `Generate a project from a template.

The template argument is either a local directory or a git location
(anything ending in .git, or an http(s)/ssh/git@ URL). Remote templates
are cloned into the cache; --ref picks a tag or commit hash, and --path
selects a template living below the repository root.

Parameters declared by the template are asked interactively, shaped by
their declared type. Any of them can be supplied up front with repeated
--param name=value flags; --no-input disables prompting entirely and
falls back to declared defaults.

By default the target directory must not already contain files. --force
replaces it wholesale, --append adds missing files without touching
existing ones.

Pre hooks run inside the freshly created target directory before any
file is materialized; post hooks run after the full tree is written.
Hooks run in declared order and the first failing command aborts the
run.`
