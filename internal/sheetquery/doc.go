// Package sheetquery implements the structured-query mini-language used to
// filter spreadsheet rows, e.g. `price = 202.39 and notes != "paid"`.
//
// The syntax follows the Google Sheets list-feed structured query:
//
//	expr    := or
//	or      := and ("or" and)*
//	and     := not ("and" not)*
//	not     := "not" not | primary
//	primary := "(" expr ")" | column op literal
//	op      := "=" | "==" | "!=" | "<>" | "<" | "<=" | ">" | ">="
//
// Literals are numbers, quoted strings ("..." or '...') or bare words.
// When both sides of a comparison read as numbers the comparison is numeric,
// otherwise it is a string comparison. Column names are normalised with
// NormalizeColumn, so `Unit Price` and `unitprice` name the same column.
//
// Sheets API v4 has no server-side row filter, so spreadsheet clients compile
// the query once and evaluate it against every fetched row.
package sheetquery
