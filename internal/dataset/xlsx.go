package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// ReadXLSX parses .xlsx bytes into a dataset using the first worksheet
// (or the named one). The workbook zip is read directly with archive/zip
// and encoding/xml; the cell "t" attribute drives the cell kind, so
// spreadsheet input is naturally type-heterogeneous.
func ReadXLSX(data []byte, sheetName string) (*Dataset, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	sheets := parseWorkbook(readZipFile(zr, "xl/workbook.xml"))
	rels := parseRelationships(readZipFile(zr, "xl/_rels/workbook.xml.rels"))
	shared := parseSharedStrings(readZipFile(zr, "xl/sharedStrings.xml"))

	target := ""
	if sheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s.Name, sheetName) {
				target = normalizeRelPath(rels[s.RID])
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet %q not found in workbook", sheetName)
		}
	} else if len(sheets) > 0 {
		target = normalizeRelPath(rels[sheets[0].RID])
	}
	if target == "" {
		target = "xl/worksheets/sheet1.xml"
	}

	sheetXML := readZipFile(zr, target)
	if len(sheetXML) == 0 {
		return nil, fmt.Errorf("worksheet %s is missing or empty", target)
	}

	rows, err := parseSheetRows(sheetXML, shared)
	if err != nil {
		return nil, fmt.Errorf("parse worksheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		headers[i] = strings.TrimSpace(c.Display())
	}

	ds := New(headers)
	for _, row := range rows[1:] {
		ds.AppendRow(row)
	}
	return ds, nil
}

type wbSheet struct {
	Name string
	RID  string
}

func parseWorkbook(data []byte) []wbSheet {
	var sheets []wbSheet
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return sheets
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var s wbSheet
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "name":
					s.Name = a.Value
				case "id": // r:id
					s.RID = a.Value
				}
			}
			sheets = append(sheets, s)
		}
	}
}

func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var id, target string
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "Id":
					id = a.Value
				case "Target":
					target = a.Value
				}
			}
			if id != "" && target != "" {
				out[id] = target
			}
		}
	}
}

func parseSharedStrings(data []byte) []string {
	var out []string
	var buf strings.Builder
	inT := false
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "si" {
				buf.Reset()
			}
			if se.Name.Local == "t" {
				inT = true
			}
		case xml.EndElement:
			if se.Name.Local == "t" {
				inT = false
			}
			if se.Name.Local == "si" {
				out = append(out, buf.String())
			}
		case xml.CharData:
			if inT {
				buf.Write([]byte(se))
			}
		}
	}
}

// parseSheetRows walks <row>/<c> elements and returns typed cells.
// Absent cells within a row stay missing.
func parseSheetRows(data []byte, shared []string) ([][]Cell, error) {
	var rows [][]Cell
	var cur []Cell
	inRow := false
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				inRow = true
				cur = nil
			}
			if inRow && se.Name.Local == "c" {
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := colIndexFromRef(ref)
				if col < 0 {
					col = len(cur)
				}
				for len(cur) <= col {
					cur = append(cur, Null())
				}
				raw := readCellText(dec)
				cur[col] = xlsxCell(typ, raw, shared)
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				inRow = false
				rows = append(rows, cur)
			}
		}
	}
}

// readCellText consumes tokens until </c>, capturing <v> or inline <t>.
func readCellText(dec *xml.Decoder) string {
	var val string
	depth := 0
	capture := false
	var buf strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			depth++
			if se.Name.Local == "v" || se.Name.Local == "t" {
				capture = true
				buf.Reset()
			}
		case xml.EndElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				capture = false
				val = buf.String()
			}
			if depth == 0 && se.Name.Local == "c" {
				return val
			}
			depth--
		case xml.CharData:
			if capture {
				buf.Write([]byte(se))
			}
		}
	}
}

func xlsxCell(typ, raw string, shared []string) Cell {
	switch typ {
	case "s":
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 || idx >= len(shared) {
			return Null()
		}
		return StringCell(shared[idx])
	case "b":
		return BoolCell(raw == "1")
	case "str", "inlineStr":
		if raw == "" {
			return Null()
		}
		return StringCell(raw)
	case "e":
		return Null()
	default: // numeric
		if raw == "" {
			return Null()
		}
		if !strings.ContainsAny(raw, ".eE") {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				return IntCell(v)
			}
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return FloatCell(v)
		}
		return OtherCell(raw)
	}
}

// colIndexFromRef maps refs like "C12" to a 0-based column index.
func colIndexFromRef(ref string) int {
	i := 0
	for i < len(ref) && ((ref[i] >= 'A' && ref[i] <= 'Z') || (ref[i] >= 'a' && ref[i] <= 'z')) {
		i++
	}
	if i == 0 {
		return -1
	}
	idx := 0
	for _, c := range strings.ToUpper(ref[:i]) {
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			defer rc.Close()
			b, _ := io.ReadAll(rc)
			return b
		}
	}
	return nil
}

func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}
