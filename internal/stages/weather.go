package stages

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/canmet-energy/h2ktohpxml/internal/state"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

//go:embed stations.yaml
var stationsYAML []byte

// Station is one row of the climate-station reference table.
type Station struct {
	Location string `yaml:"location"`
	Region   string `yaml:"region"`
	Name     string `yaml:"name"`
	WMO      string `yaml:"wmo"`
	EPW      string `yaml:"epw"`
}

// ashrae140Station is the standardized comparison-protocol climate used in
// ASHRAE140 mode regardless of the source document's location.
var ashrae140Station = Station{
	Location: "COLORADO SPRINGS",
	Name:     "Colorado Springs Peterson Field",
	WMO:      "724660",
	EPW:      "USA_CO_Colorado.Springs-Peterson.Field.724660_TMY3.epw",
}

var (
	stationIndexOnce sync.Once
	stationIndex     map[string]Station
	stationIndexErr  error
)

func loadStationIndex() (map[string]Station, error) {
	stationIndexOnce.Do(func() {
		var table struct {
			Stations []Station `yaml:"stations"`
		}
		if err := yaml.Unmarshal(stationsYAML, &table); err != nil {
			stationIndexErr = fmt.Errorf("stages: decode climate-station table: %w", err)
			return
		}
		stationIndex = make(map[string]Station, len(table.Stations))
		for _, station := range table.Stations {
			stationIndex[strings.ToUpper(station.Location)] = station
		}
	})
	return stationIndex, stationIndexErr
}

// Weather selects the climate dataset and applies the mode's result-validity
// rules. SOC resolves the station from the reference table and requires
// house-level energy results; ASHRAE140 pins the comparison-protocol station
// and bypasses the results check.
type Weather struct {
	Mode   state.Mode
	Config Config
}

// Name implements Stage.
func (Weather) Name() string { return "weather" }

// Apply implements Stage.
func (w Weather) Apply(src, out tree.Node, md *state.ModelData) error {
	station, err := w.resolveStation(src, md)
	if err != nil {
		return err
	}

	ws := out.Ensure(buildingDetailsPath("ClimateandRiskZones", "WeatherStation")...)
	ws.Ensure("SystemIdentifier").SetAttr("id", "WeatherStation1")
	ws["Name"] = station.Name
	if station.WMO != "" {
		ws["WMO"] = station.WMO
	}
	if station.EPW != "" {
		ws.Ensure("extension")["EPWFilePath"] = station.EPW
	}

	md.SetBuildingDetail("weather_station", station.Name)
	return nil
}

func (w Weather) resolveStation(src tree.Node, md *state.ModelData) (Station, error) {
	if w.Mode == state.ModeASHRAE140 {
		return ashrae140Station, nil
	}

	// SOC mode expects house-level energy results to accompany the model.
	if len(md.Results("")) == 0 {
		md.AddWarning("no house-level energy results found in source document")
	}

	station := Station{}
	location := h2kLocation(src)
	if location == "" {
		md.AddWarning("source document has no weather location")
	} else {
		index, err := loadStationIndex()
		if err != nil {
			return Station{}, err
		}
		found, ok := index[strings.ToUpper(location)]
		if !ok {
			md.AddWarning(state.Record{
				Message: "weather location has no climate-station mapping",
				Fields:  map[string]any{"location": location},
			})
			station.Name = location
		} else {
			station = found
		}
	}

	if w.Config != nil {
		if override := w.Config.String("weather.station_override"); override != "" {
			station.Name = override
		}
		if override := w.Config.String("weather.epw_override"); override != "" {
			station.EPW = override
		}
	}
	return station, nil
}

func h2kLocation(src tree.Node) string {
	weather := src.Child("HouseFile", "ProgramInformation", "Weather")
	if weather == nil {
		return ""
	}
	if text := weather.Text("Location", "English"); text != "" {
		return text
	}
	return weather.Text("Location")
}
