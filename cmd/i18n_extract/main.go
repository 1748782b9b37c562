// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
I18n_extract scans the module for translatable strings and writes a gettext
template (.pot) for translators.

Run it from the repository root:

	go run ./cmd/i18n_extract -o i18n/po/errorpage.pot
*/
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

func main() {
	outPath := flag.String("o", "i18n/po/errorpage.pot", "output file")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, "./...")
	if err != nil {
		log.Fatalf("failed to load packages: %v", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal("failed to load packages due to errors")
	}

	refs := extractRefs(pkgs, findProjectRoot(wd), findI18nPkgPaths(pkgs))

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := os.WriteFile(*outPath, []byte(renderPOT(refs, detectVersion())), 0o644); err != nil {
		log.Fatalf("failed to write output file %s: %v", *outPath, err)
	}

	log.Printf("wrote %d msgids to %s", len(refs), *outPath)
}
