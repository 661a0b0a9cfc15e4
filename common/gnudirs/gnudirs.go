// Package gnudirs declares the GNU standard installation directory variables
// (prefix, bindir, mandir, ...) and the manual page extensions.
//
// Defaults reference each other with ${name} so that a host expanding them
// against its store resolves, for example, bindir to /usr/local/bin.
// Substitutions always use braces, which keeps them intact when keys are
// prefixed or suffixed.
package gnudirs

import (
	"fmt"
	"slices"

	"github.com/teranos/commonargs/argdecl"
)

const Module = "gnudirs"

const (
	FamilyDirs    = "dirs"
	FamilyManExts = "man_exts"
)

var dirs = []argdecl.Spec{
	argdecl.ArgDefault("prefix", "Installation prefix", "/usr/local"),
	argdecl.ArgDefault("exec_prefix", "Installation prefix for executable files", "${prefix}"),
	argdecl.ArgDefault("bindir", "The directory for installing executable programs that users can run", "${exec_prefix}/bin"),
	argdecl.ArgDefault("sbindir", "The directory for installing executable programs that can be run from the shell, but are only generally useful to system administrators", "${exec_prefix}/sbin"),
	argdecl.ArgDefault("libexecdir", "The directory for installing executable programs to be run by other programs rather than by users", "${exec_prefix}/libexec"),
	argdecl.ArgDefault("datarootdir", "The root of the directory tree for read-only architecture-independent data files", "${prefix}/share"),
	argdecl.ArgDefault("datadir", "The directory for installing idiosyncratic read-only architecture-independent data files for this program", "${datarootdir}"),
	argdecl.ArgDefault("sysconfdir", "The directory for installing read-only data files that pertain to a single machine", "${prefix}/etc"),
	argdecl.ArgDefault("sharedstatedir", "The directory for installing architecture-independent data files which the programs modify while they run", "${prefix}/com"),
	argdecl.ArgDefault("localstatedir", "The directory for installing data files which the programs modify while they run, and that pertain to one specific machine", "${prefix}/var"),
	argdecl.ArgDefault("runstatedir", "The directory for installing data files which the programs modify while they run, that pertain to one specific machine, and which need not persist longer than the execution of the program", "${localstatedir}/run"),
	argdecl.ArgDefault("includedir", "The directory for installing header files to be included by user programs with the C #include preprocessor directive", "${prefix}/include"),
	argdecl.ArgDefault("oldincludedir", "The directory for installing #include header files for use with compilers other than GCC", "/usr/include"),
	argdecl.ArgDefault("docdir", "The directory for installing documentation files (other than Info) for this package", "${datarootdir}/doc"),
	argdecl.ArgDefault("infodir", "The directory for installing the Info files for this package", "${datarootdir}/info"),
	argdecl.ArgDefault("htmldir", "Directory for installing documentation files in the html format", "${docdir}"),
	argdecl.ArgDefault("dvidir", "Directory for installing documentation files in the dvi format", "${docdir}"),
	argdecl.ArgDefault("pdfdir", "Directory for installing documentation files in the pdf format", "${docdir}"),
	argdecl.ArgDefault("psdir", "Directory for installing documentation files in the ps format", "${docdir}"),
	argdecl.ArgDefault("libdir", "The directory for object files and libraries of object code", "${exec_prefix}/lib"),
	argdecl.ArgDefault("lispdir", "The directory for installing any Emacs Lisp files in this package", "${datarootdir}/emacs/site-lisp"),
	argdecl.ArgDefault("localedir", "The directory for installing locale-specific message catalogs for this package", "${datarootdir}/locale"),
	argdecl.ArgDefault("mandir", "The top-level directory for installing the man pages (if any) for this package", "${datarootdir}/man"),
}

var manExts []argdecl.Spec

func init() {
	manExts = append(manExts, argdecl.ArgDefault("manext", "The file name extension for the installed man page", ".1"))
	for section := 1; section <= 9; section++ {
		dirs = append(dirs, argdecl.ArgDefault(
			fmt.Sprintf("man%ddir", section),
			fmt.Sprintf("The directory for installing section %d man pages", section),
			fmt.Sprintf("${mandir}/man%d", section),
		))
		manExts = append(manExts, argdecl.ArgDefault(
			fmt.Sprintf("man%dext", section),
			fmt.Sprintf("The file name extension for installed section %d man pages", section),
			fmt.Sprintf(".%d", section),
		))
	}
}

// Table returns a fresh copy of the module table; callers may modify it
func Table() argdecl.Table {
	return argdecl.Table{
		Module: Module,
		Families: []argdecl.Family{
			{Name: FamilyDirs, Specs: slices.Clone(dirs)},
			{Name: FamilyManExts, Specs: slices.Clone(manExts)},
		},
	}
}

func Names(opts argdecl.Options) ([]string, error) {
	return argdecl.Names(Table(), opts)
}

func Declarations(opts argdecl.Options) (*argdecl.Declarations, error) {
	return argdecl.Declare(Table(), opts)
}
