// Package test contains assertion helpers shared by package tests.
package test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cl "github.com/CausticLang/CausticLexer"
)

// ExpectErrorCode stops the test unless e is (or wraps) *causticlexer.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error, msgAndArgs ...any) *cl.Error {
	t.Helper()
	require.Error(t, e, msgAndArgs...)
	var ce *cl.Error
	require.True(t, errors.As(e, &ce), "expecting *causticlexer.Error, got %T: %v", e, e)
	require.Equal(t, expected, ce.Code, "unexpected error: %v", e)
	return ce
}

// ExpectPos checks line and column of positioned error.
func ExpectPos(t testing.TB, line, col int, e *cl.Error) {
	t.Helper()
	require.Equal(t, []int{line, col}, []int{e.Line, e.Col}, "error position: %v", e)
}
