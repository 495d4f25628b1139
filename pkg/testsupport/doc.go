// Package testsupport holds fixtures shared by package tests: in-memory theme
// filesystems, golden file helpers and output capture.
package testsupport
