// Package xlsx reads the cell text of Office Open XML spreadsheets.
//
// Only what a roster export needs is decoded: the workbook's sheet list,
// the shared string table and cell values. Styles, formulas, merged cells
// and number formats are ignored; a cell reads as the text Excel stored
// for it, so a numeric cell yields its raw value ("12", "3.5").
//
//	wb, err := xlsx.Open("judges.xlsx")
//	if err != nil {
//	    return err
//	}
//	defer wb.Close()
//	rows, err := wb.Rows(0)
package xlsx
