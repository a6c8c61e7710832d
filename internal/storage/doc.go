// Package storage manages the local files of a puzzle workspace.
//
// Raw inputs are stored as inputs/DD.txt and notebooks as DD.ipynb, where DD
// is the zero-padded day of the month. Files are replaced through a temp file
// and rename. There is no locking between concurrent runs.
package storage
