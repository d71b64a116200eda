// Package tableone builds stratified descriptive summary tables ("Table 1")
// from an in-memory dataset.
//
// Generation runs five stages in order:
//
//	classify   picks a Kind per variable from overrides or inferred type
//	stratify   partitions rows by the strata column
//	summarize  computes per-stratum statistics and missing counts
//	format     renders statistics as display strings
//	assemble   lays out rows and columns into a Table
//
// Every stage is a pure function of its inputs; Generate wires them together.
package tableone
