// Package ar declares the arguments of the static library archiver and indexer.
package ar

import (
	"slices"

	"github.com/teranos/commonargs/argdecl"
)

const Module = "ar"

const (
	FamilyProgs = "progs"
	FamilyFlags = "flags"
)

const (
	metavarProg  = "PROG"
	metavarFlags = "FLAGS"
)

var progs = []argdecl.Spec{
	argdecl.Arg("AR", "The static library archiver").WithMetavar(metavarProg),
	argdecl.Arg("RANLIB", "The archive indexer").WithMetavar(metavarProg),
}

var flags = []argdecl.Spec{
	argdecl.Arg("ARFLAGS", "General options passed to the static library archiver").WithMetavar(metavarFlags),
	argdecl.Arg("RANLIBFLAGS", "General options passed to the archive indexer").WithMetavar(metavarFlags),
}

// Table returns a fresh copy of the module table; callers may modify it
func Table() argdecl.Table {
	return argdecl.Table{
		Module: Module,
		Families: []argdecl.Family{
			{Name: FamilyProgs, Specs: slices.Clone(progs)},
			{Name: FamilyFlags, Specs: slices.Clone(flags)},
		},
	}
}

func Names(opts argdecl.Options) ([]string, error) {
	return argdecl.Names(Table(), opts)
}

func Declarations(opts argdecl.Options) (*argdecl.Declarations, error) {
	return argdecl.Declare(Table(), opts)
}
