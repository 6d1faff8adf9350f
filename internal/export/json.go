package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/san-kum/inetmap/internal/loader"
)

type ExportData struct {
	Years      []int             `json:"years"`
	Max        float64           `json:"max"`
	Applied    int               `json:"applied"`
	Duplicates int               `json:"duplicates"`
	Unmatched  []string          `json:"unmatched"`
	Countries  []CountrySeries   `json:"countries"`
	NameFixes  map[string]string `json:"name_fixes"`
}

type CountrySeries struct {
	Name         string          `json:"name"`
	Observations map[int]float64 `json:"observations"`
}

// NewExportData flattens a joined dataset. Countries keep geometry order and
// ones without any observation carry an empty map.
func NewExportData(ds *loader.Dataset) ExportData {
	data := ExportData{
		Years:      ds.Years(),
		Max:        ds.Max,
		Applied:    ds.Report.Applied,
		Duplicates: ds.Report.Duplicates,
		Unmatched:  ds.Report.Unmatched,
		NameFixes:  ds.Store.Names(),
	}
	if data.Unmatched == nil {
		data.Unmatched = []string{}
	}
	for _, e := range ds.Store.Entities() {
		obs := make(map[int]float64, len(e.Observations))
		for y, v := range e.Observations {
			obs[y] = v
		}
		data.Countries = append(data.Countries, CountrySeries{Name: e.Name, Observations: obs})
	}
	return data
}

func WriteJSON(w io.Writer, ds *loader.Dataset) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewExportData(ds)); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

func ExportJSON(path string, ds *loader.Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create json")
	}
	defer file.Close()
	return WriteJSON(file, ds)
}
