// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// ref is a source position a msgid was found at.
type ref struct {
	file string
	line int
}

// extractor holds the shared state and context for AST analysis within a package.
type extractor struct {
	refs        map[string][]ref
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	i18nPkgs    map[string]struct{}
}

// extractRefs traverses all Go source files in the given packages,
// looking for msgids to extract.
func extractRefs(pkgs []*packages.Package, projectRoot string, i18nPkgPaths map[string]struct{}) map[string][]ref {
	refs := map[string][]ref{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{
			refs:        refs,
			projectRoot: projectRoot,
			fset:        p.Fset,
			info:        p.TypesInfo,
			i18nPkgs:    i18nPkgPaths,
		}

		for _, f := range p.Syntax {
			e.inspect(f)
		}
	}

	return refs
}

func (e *extractor) inspect(f *ast.File) {
	ast.Inspect(f, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.CallExpr:
			e.handleCallExpr(x)
		case *ast.CompositeLit:
			e.handleCompositeLit(x)
		}

		return true
	})
}

// findI18nPkgPaths returns the package paths named i18n that define a MsgKey
// type with an underlying string type, regardless of how they are imported.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		if p.Name != "i18n" || p.Types == nil {
			continue
		}

		if definesMsgKey(p.Types) {
			out[p.PkgPath] = struct{}{}
		}
	}

	return out
}

func definesMsgKey(pkg *types.Package) bool {
	tn, ok := pkg.Scope().Lookup("MsgKey").(*types.TypeName)
	if !ok {
		return false
	}

	named, ok := tn.Type().(*types.Named)
	if !ok {
		return false
	}

	basic, ok := named.Underlying().(*types.Basic)

	return ok && basic.Kind() == types.String
}

// constString evaluates expr to a constant string if possible using types.Info.
// Handles string literals, const identifiers, and constant expressions like "a" + "b".
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKey reports whether t is the MsgKey type of one of the i18n packages.
func (e *extractor) isMsgKey(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	if _, ok := e.i18nPkgs[obj.Pkg().Path()]; !ok {
		return false
	}

	return obj.Name() == "MsgKey"
}

// addConst records expr if it is a constant string.
func (e *extractor) addConst(expr ast.Expr) {
	if msg, ok := constString(e.info, expr); ok {
		e.addRef(expr.Pos(), msg)
	}
}

// handleCompositeLit finds constants implicitly converted to MsgKey inside
// map, slice, array and struct literals.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		keyIsMK := e.isMsgKey(u.Key())
		valIsMK := e.isMsgKey(u.Elem())

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keyIsMK {
				e.addConst(kv.Key)
			}

			if valIsMK {
				e.addConst(kv.Value)
			}
		}

	case *types.Slice:
		e.handleElements(x.Elts, u.Elem())

	case *types.Array:
		e.handleElements(x.Elts, u.Elem())

	case *types.Struct:
		fieldTypes := make(map[string]types.Type, u.NumFields())
		for i := range u.NumFields() {
			fieldTypes[u.Field(i).Name()] = u.Field(i).Type()
		}

		for i, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if id, ok := kv.Key.(*ast.Ident); ok && e.isMsgKey(fieldTypes[id.Name]) {
					e.addConst(kv.Value)
				}

				continue
			}

			// Positional field: rely on declared field order.
			if i < u.NumFields() && e.isMsgKey(u.Field(i).Type()) {
				e.addConst(elt)
			}
		}
	}
}

func (e *extractor) handleElements(elts []ast.Expr, elem types.Type) {
	if !e.isMsgKey(elem) {
		return
	}

	for _, elt := range elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			elt = kv.Value
		}

		e.addConst(elt)
	}
}

// handleCallExpr inspects function calls and type conversions to find msgids.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	// Type conversion, e.g. i18n.MsgKey("Hello").
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && e.isMsgKey(tv.Type) {
			e.addConst(x.Args[0])
		}

		return
	}

	// Tr(ctx, "msg")
	if sel, ok := x.Fun.(*ast.SelectorExpr); ok {
		if fn, ok := e.info.Uses[sel.Sel].(*types.Func); ok && e.isI18nFunc(fn, "Tr") {
			if len(x.Args) >= 2 {
				e.addConst(x.Args[1])
			}

			return
		}
	}

	if id, ok := x.Fun.(*ast.Ident); ok {
		if fn, ok := e.info.Uses[id].(*types.Func); ok && e.isI18nFunc(fn, "Tr") {
			if len(x.Args) >= 2 {
				e.addConst(x.Args[1])
			}

			return
		}
	}

	// Any other call with MsgKey parameters.
	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok {
		return
	}

	params := sig.Params()

	n := params.Len()
	if n == 0 {
		return
	}

	variadic := sig.Variadic()
	last := n - 1

	for i, arg := range x.Args {
		var pt types.Type

		if variadic && i >= last {
			// If called with ...slice, let composite literal handling discover elements.
			if x.Ellipsis != token.NoPos {
				continue
			}

			pt = params.At(last).Type().(*types.Slice).Elem() //nolint:forcetypeassert // variadic params are slices
		} else {
			if i >= n {
				break
			}

			pt = params.At(i).Type()
		}

		if e.isMsgKey(pt) {
			e.addConst(arg)
		}
	}
}

func (e *extractor) isI18nFunc(fn *types.Func, name string) bool {
	if fn.Pkg() == nil || fn.Name() != name {
		return false
	}

	_, ok := e.i18nPkgs[fn.Pkg().Path()]

	return ok
}

// addRef records a reference to a msgid, normalising the file path relative
// to the computed project root.
func (e *extractor) addRef(pos token.Pos, msg string) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	e.refs[msg] = append(e.refs[msg], ref{file: filepath.ToSlash(file), line: p.Line})
}
