package dictionary

// MergeTables exposes the string-table merge to the package tests.
var MergeTables = mergeTables
