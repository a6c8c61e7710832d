// Package puzzle identifies a daily puzzle by year and day of the month.
//
// Days are rendered zero-padded to two digits wherever they name local files
// (inputs/03.txt, 03.ipynb), while URLs on the puzzle website use the bare
// number (/2021/day/3).
package puzzle
