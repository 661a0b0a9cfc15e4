// Package cc declares the arguments of C and C++ toolchains: compilers,
// linkers and their flags.
package cc

import (
	"slices"

	"github.com/teranos/commonargs/argdecl"
)

// Module is the registry name of this package
const Module = "cc"

// Family names; switch them off with argdecl.Options.Families.
const (
	FamilyProgs = "progs"
	FamilyFlags = "flags"
)

var progs = []argdecl.Spec{
	argdecl.Arg("CC", "A C compiler to use"),
	argdecl.Arg("CXX", "A C++ compiler to use"),
	argdecl.Arg("LINK", "A linker to use"),
	argdecl.Arg("SHCC", "A C compiler used when compiling shared libraries"),
	argdecl.Arg("SHCXX", "A C++ compiler used when compiling shared libraries"),
	argdecl.Arg("SHLINK", "A linker to use when creating shared libraries"),
}

var flags = []argdecl.Spec{
	argdecl.Arg("CFLAGS", "Flags for C compiler"),
	argdecl.Arg("CXXFLAGS", "Flags for C++ compiler"),
	argdecl.Arg("CCFLAGS", "Flags for both C and C++ compilers"),
	argdecl.Arg("LINKFLAGS", "Flags for linker"),
	argdecl.Arg("SHCFLAGS", "Flags for C compiler used when compiling shared libraries"),
	argdecl.Arg("SHCXXFLAGS", "Flags for C++ compiler used when compiling shared libraries"),
	argdecl.Arg("SHCCFLAGS", "Flags for both C and C++ compilers used when compiling shared libraries"),
	argdecl.Arg("SHLINKFLAGS", "Flags for linker used when creating shared libraries"),
}

// Table returns a fresh copy of the argument table; callers may modify it
func Table() argdecl.Table {
	return argdecl.Table{
		Module: Module,
		Families: []argdecl.Family{
			{Name: FamilyProgs, Specs: slices.Clone(progs)},
			{Name: FamilyFlags, Specs: slices.Clone(flags)},
		},
	}
}

// Names returns the argument names accepted by opts
func Names(opts argdecl.Options) ([]string, error) {
	return argdecl.Names(Table(), opts)
}

// Declarations builds declarations for the arguments accepted by opts.
// Option keys equal argument names unless opts.NameConv says otherwise.
func Declarations(opts argdecl.Options) (*argdecl.Declarations, error) {
	return argdecl.Declare(Table(), opts)
}
