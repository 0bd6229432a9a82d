// Package ioutils provides file system utilities for erettsegi-downloader.
//
// This package contains functions for:
//   - Run directory naming and creation
//   - Filename sanitization for cross-platform compatibility
//   - Zip extraction
//
// # Run Directories
//
// Every run stores its documents in a directory named after the session:
//
//	dir := ioutils.RunDir("erettsegi_{year}_{month}_{level}", req)
//	// "erettsegi_2012_okt_e"
//	err := ioutils.EnsureDir(dir)
//
// # Zip Extraction
//
// ExtractZip unpacks an archive into a directory and refuses entries that
// would escape it:
//
//	files, err := ioutils.ExtractZip(ctx, "/tmp/run/e_inffor_12okt_fl.zip", "/tmp/run")
//
// Older archives were created on Windows with code page 852 file names;
// such names are converted to UTF-8 during extraction.
package ioutils
