package project

import (
	"strings"
)

// Flag classification tables. See
// https://github.com/Valloric/ycmd/blob/master/ycmd/completers/cpp/flags.py
// for background on which flags are safe to forward to a single-file
// front-end.

// Flags that take a value in the following token; both tokens are
// removed. Matched by prefix, like the path flags below.
var blacklistMulti = []string{
	"-MF", "-MT", "-MQ", "-o", "--serialize-diagnostics", "-Xclang",
}

// Flags which are always removed from the command line.
var blacklist = []string{
	"-c", "-MP", "-MD", "-MMD", "--fcolor-diagnostics",
}

// Flags which are followed by a potentially relative path. All
// relative paths must be made absolute or the front-end will not
// resolve them. Order matters: longer prefixes come before the flags
// they extend (-include-pch before -include).
var pathArgs = []string{
	"-I", "-iquote", "-isystem", "--sysroot=",
	"-isysroot", "-gcc-toolchain", "-include-pch", "-iframework",
	"-F", "-imacros", "-include",
}

// Flags whose literal token must embed the absolute path, because the
// compiler resolves them relative to its own working directory and
// ignores -working-directory. Assumed to be a subset of pathArgs.
var normalizePathArgs = []string{"--sysroot="}

// Flags whose path argument feeds #include "..." lookup.
var quoteIncludeArgs = []string{"-iquote"}

// Flags whose path argument feeds #include <...> lookup.
var angleIncludeArgs = []string{"-I", "-isystem"}

func shouldAddToQuoteIncludes(arg string) bool {
	return startsWithAny(arg, quoteIncludeArgs)
}

func shouldAddToAngleIncludes(arg string) bool {
	return startsWithAny(arg, angleIncludeArgs)
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func anyStartsWith(args []string, prefix string) bool {
	for _, a := range args {
		if strings.HasPrefix(a, prefix) {
			return true
		}
	}
	return false
}

const (
	langC      = "c"
	langCpp    = "c++"
	langObjC   = "objective-c"
	langObjCpp = "objective-c++"
)

// sourceFileType infers the language from the file extension. The
// front-end has no reliable heuristics of its own, so the language is
// always passed explicitly.
func sourceFileType(path string) (string, bool) {
	switch {
	case strings.HasSuffix(path, ".c"):
		return langC, true
	case strings.HasSuffix(path, ".cpp"), strings.HasSuffix(path, ".cc"):
		return langCpp, true
	case strings.HasSuffix(path, ".mm"):
		return langObjCpp, true
	case strings.HasSuffix(path, ".m"):
		return langObjC, true
	}
	return "", false
}

// looksLikeSourceFile distinguishes source-file tokens from command
// names while stripping wrapper prefixes. A token counts as a source
// file when its last dot starts a segment of at most three characters
// whose first character is not a digit: foo.cc is a source file,
// clang-4.0 and ./a/b/goma are commands.
func looksLikeSourceFile(token string) bool {
	dot := strings.LastIndexByte(token, '.')
	if dot < 0 || dot+4 < len(token) {
		return false
	}
	if dot+1 < len(token) && token[dot+1] >= '0' && token[dot+1] <= '9' {
		return false
	}
	return true
}

// normalizeEntry is the central transformation from one raw build
// record to a canonical Entry. Discovered include directories are
// inserted into cfg's quote/angle sets as a side effect.
func normalizeEntry(cfg *projectConfig, raw rawEntry) Entry {
	cleanupMaybeRelativePath := func(path string) string {
		// An empty value for a path-bearing flag is a contract
		// violation on the input record; fabricating a path here
		// would silently corrupt include resolution.
		if path == "" {
			panic("project: path-bearing flag with empty value")
		}
		if path[0] == '/' || raw.directory == "" {
			return cfg.norm.Normalize(path)
		}
		return cfg.norm.Normalize(raw.directory + "/" + path)
	}

	result := Entry{Filename: cfg.norm.Normalize(raw.file)}

	// Strip tool wrappers (distributed-build schedulers and the like)
	// from the front of the command line. Never skip past the main
	// source file or anything that looks like one.
	i := 0
	for i < len(raw.args) {
		arg := raw.args[i]
		if strings.HasPrefix(arg, "-") ||
			cfg.norm.Normalize(arg) == result.Filename ||
			looksLikeSourceFile(arg) {
			break
		}
		i++
	}
	if i > 0 {
		// The last skipped token is the compiler binary.
		result.Args = append(result.Args, raw.args[i-1])
	} else {
		// Args probably came from a flat flag file with no binary.
		// The front-end expects the binary path as args[0] and
		// ignores it, so substitute a dummy matching the language.
		if lang, ok := sourceFileType(raw.file); ok && lang == langC {
			result.Args = append(result.Args, "clang")
		} else {
			result.Args = append(result.Args, "clang++")
		}
	}

	if !anyStartsWith(raw.args, "-working-directory") {
		result.Args = append(result.Args, "-working-directory", raw.directory)
	}

	if lang, ok := sourceFileType(raw.file); ok {
		if !anyStartsWith(raw.args, "-x") {
			result.Args = append(result.Args, "-x"+lang)
		}
		if !anyStartsWith(raw.args, "-std=") {
			switch lang {
			case langC:
				result.Args = append(result.Args, "-std=gnu11")
			case langCpp:
				result.Args = append(result.Args, "-std=c++14")
			}
		}
	}

	nextFlagIsPath := false
	addNextToQuoteDirs := false
	addNextToAngleDirs := false

	// Path arguments come in two forms, {"-I", "foo"} and {"-Ifoo"};
	// both are supported.
	for ; i < len(raw.args); i++ {
		arg := raw.args[i]

		if !nextFlagIsPath {
			if startsWithAny(arg, blacklistMulti) {
				i++
				continue
			}
			if startsWithAny(arg, blacklist) {
				continue
			}
		}

		if nextFlagIsPath {
			// {"-I", "foo"} style: arg is the path for the previous
			// switch.
			normalized := cleanupMaybeRelativePath(arg)
			if addNextToQuoteDirs {
				cfg.quoteDirs[normalized] = struct{}{}
			}
			if addNextToAngleDirs {
				cfg.angleDirs[normalized] = struct{}{}
			}
			nextFlagIsPath = false
			addNextToQuoteDirs = false
			addNextToAngleDirs = false
		} else {
			for _, flag := range pathArgs {
				if arg == flag {
					nextFlagIsPath = true
					addNextToQuoteDirs = shouldAddToQuoteIncludes(arg)
					addNextToAngleDirs = shouldAddToAngleIncludes(arg)
					break
				}

				// {"-Ifoo"} style.
				if strings.HasPrefix(arg, flag) {
					path := cleanupMaybeRelativePath(arg[len(flag):])
					// Only --sysroot= is rewritten to its absolute
					// form; other path flags keep their literal token
					// and feed the include sets only.
					if startsWithAny(arg, normalizePathArgs) {
						arg = flag + path
					}
					if shouldAddToQuoteIncludes(flag) {
						cfg.quoteDirs[path] = struct{}{}
					}
					if shouldAddToAngleIncludes(flag) {
						cfg.angleDirs[path] = struct{}{}
					}
					break
				}
			}
		}

		result.Args = append(result.Args, arg)
	}

	// User-supplied extra flags are appended verbatim.
	result.Args = append(result.Args, cfg.extraFlags...)

	// -resource-dir lets the front-end resolve built-in system
	// includes like <cstddef>.
	if !anyStartsWith(result.Args, "-resource-dir") {
		result.Args = append(result.Args, "-resource-dir="+cfg.resourceDir)
	}

	// The project's compiler version may not match ours; mismatched
	// warning options must not produce diagnostics.
	if !anyStartsWith(result.Args, "-Wno-unknown-warning-option") {
		result.Args = append(result.Args, "-Wno-unknown-warning-option")
	}

	// -fparse-all-comments surfaces documentation in indexing and
	// completion.
	if !anyStartsWith(result.Args, "-fparse-all-comments") {
		result.Args = append(result.Args, "-fparse-all-comments")
	}

	return result
}
