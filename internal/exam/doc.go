// Package exam holds the naming knowledge of the informatics matura
// document archive on dari.oktatas.hu.
//
// # Input Normalization
//
// Raw user input is turned into typed values:
//
//	year, err := exam.ParseYear("12")       // 2012
//	month, err := exam.ParseMonth("ősz")    // exam.October
//	level, err := exam.ParseLevel("advanced") // exam.LevelAdvanced
//
// Every failure is a *ValidationError naming the offending field.
//
// # File Names
//
// The portal changed its file naming scheme several times since 2005.
// ResolveTemplates picks the template set in effect for a session and
// BuildFileNames fills it in:
//
//	names := exam.BuildFileNames(2012, exam.October, exam.LevelAdvanced)
//	// e_inf_12okt_fl.pdf, e_inffor_12okt_fl.zip, ...
//
// # Links
//
// BuildLinks turns file names into download URLs, compensating for the
// irregular directory names of a few early sessions:
//
//	links := exam.BuildLinks(2007, exam.October, names)
//	// https://dari.oktatas.hu/kir/erettsegi/okev_doc/erettsegi_2007/oktober/...
//
// All functions in this package are pure and safe for concurrent use.
package exam
