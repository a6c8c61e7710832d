// Package notebook builds and patches the day's Jupyter notebook.
//
// A new notebook always has four cells: the part 1 description (tagged
// day-desc-1), a code cell loading the input file, the part 2 description
// (tagged day-desc-2) and an empty code cell. Tags live in the cell
// metadata under the "function" key.
//
// Patching works on the raw document bytes so that anything Jupyter added
// after creation (cell ids, outputs, kernel metadata) is kept as is.
package notebook
