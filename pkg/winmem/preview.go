package winmem

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// RenderTable writes the storage rows as a table
func RenderTable(w io.Writer, storage []Storage) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"index", "type", "descr", "units", "size", "used"})
	for i := range storage {
		s := &storage[i]
		table.Append([]string{
			strconv.Itoa(s.Index),
			s.TypeName(),
			s.Descr,
			strconv.FormatInt(s.AllocationUnits, 10),
			strconv.FormatInt(s.SizeBytes(), 10),
			strconv.FormatInt(s.UsedBytes(), 10),
		})
	}
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetColumnSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.Render()
}
