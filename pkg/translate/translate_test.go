package translate

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	h2kerr "github.com/canmet-energy/h2ktohpxml/errors"
	internalhpxml "github.com/canmet-energy/h2ktohpxml/internal/hpxml"
)

const sourceDocument = `<?xml version="1.0" encoding="UTF-8"?>
<HouseFile>
  <ProgramInformation>
    <Weather>
      <Location code="27"><English>Ottawa</English></Location>
    </Weather>
  </ProgramInformation>
  <House>
    <Specifications>
      <FacilityType><English>Single family detached</English></FacilityType>
      <YearBuilt>1994</YearBuilt>
      <Storeys code="2"><English>Two storeys</English></Storeys>
      <HeatedFloorArea aboveGrade="110" belowGrade="90"/>
    </Specifications>
    <Components>
      <Wall adjacentEnclosedSpace="false">
        <Label>Main wall</Label>
        <Construction>
          <Type rValue="3.5"/>
        </Construction>
        <Measurements height="2.4" perimeter="36"/>
        <Components>
          <Window>
            <Label>South window</Label>
            <Construction>
              <Type rValue="0.6"/>
            </Construction>
            <Measurements height="1200" width="1500"/>
          </Window>
          <Door>
            <Label>Front door</Label>
            <Construction>
              <Type rValue="1.1"/>
            </Construction>
            <Measurements height="2.03" width="0.91"/>
          </Door>
        </Components>
      </Wall>
      <Ceiling>
        <Label>Main attic</Label>
        <Construction>
          <CeilingType rValue="8.6"/>
        </Construction>
        <Measurements area="95"/>
      </Ceiling>
      <Basement>
        <Label>Full basement</Label>
        <Wall>
          <Construction>
            <Type rValue="2.1"/>
          </Construction>
          <Measurements height="2.4"/>
        </Wall>
        <Floor>
          <Construction>
            <Type rValue="0.8"/>
          </Construction>
          <Measurements area="90"/>
        </Floor>
      </Basement>
      <HotWater>
        <Primary>
          <Label>Main DHW</Label>
          <EnergySource code="2"/>
          <TankVolume value="189.3"/>
          <EnergyFactor value="0.67"/>
        </Primary>
      </HotWater>
    </Components>
    <HeatingCooling>
      <Type1>
        <Furnace>
          <Equipment>
            <EnergySource code="2"/>
          </Equipment>
          <Specifications>
            <OutputCapacity value="22"/>
            <Efficiency value="95"/>
          </Specifications>
        </Furnace>
      </Type1>
    </HeatingCooling>
  </House>
  <AllResults>
    <Results houseCode="SOC">
      <Annual energyGJ="101.2"/>
    </Results>
    <Results houseCode="Reference">
      <Annual energyGJ="130.5"/>
    </Results>
    <Results>
      <Annual energyGJ="99.8"/>
    </Results>
  </AllResults>
</HouseFile>
`

func testTranslator(options ...Option) *Translator {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithSerializer(internalhpxml.NewSerializer(internalhpxml.WithClock(func() time.Time {
			return time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
		}))),
	}
	return New(append(base, options...)...)
}

func TestTranslateDefaultsToSOC(t *testing.T) {
	t.Parallel()
	translator := testTranslator()

	result, err := translator.Translate(context.Background(), Request{
		Document: []byte(sourceDocument),
	})
	require.NoError(t, err)
	require.Empty(t, result.Warnings)

	output := string(result.Document)
	require.True(t, strings.HasPrefix(output, `<?xml version="1.0" encoding="UTF-8"?>`))
	require.Contains(t, output, "<CreatedDateAndTime>2026-03-05T12:00:00Z</CreatedDateAndTime>")
	require.Contains(t, output, "<SoftwareProgramUsed>h2ktohpxml</SoftwareProgramUsed>")
	require.Contains(t, output, "Ottawa Macdonald-Cartier Intl AP")
	require.Contains(t, output, "<WMO>716280</WMO>")
	require.Contains(t, output, "single-family detached")
	require.Contains(t, output, `id="Wall1"`)
	require.Contains(t, output, `id="Window1"`)
	require.Contains(t, output, `idref="Wall1"`)
	require.Contains(t, output, `id="FoundationWall1"`)
	require.Contains(t, output, `id="HeatingSystem1"`)
	require.Contains(t, output, "<HeatingSystemFuel>natural gas</HeatingSystemFuel>")
	require.Contains(t, output, `id="WaterHeatingSystem1"`)
	require.NotContains(t, output, "ApplyASHRAE140Assumptions")
}

func TestTranslateASHRAE140Mode(t *testing.T) {
	t.Parallel()
	translator := testTranslator()

	result, err := translator.Translate(context.Background(), Request{
		Document: []byte(sourceDocument),
		Config:   map[string]any{"translation_mode": "ASHRAE140"},
	})
	require.NoError(t, err)

	output := string(result.Document)
	require.Contains(t, output, "<ApplyASHRAE140Assumptions>true</ApplyASHRAE140Assumptions>")
	require.Contains(t, output, "Colorado Springs Peterson Field")
	require.NotContains(t, output, "Ottawa Macdonald-Cartier")
}

func TestTranslateInvalidModeFailsBeforeParsing(t *testing.T) {
	t.Parallel()
	translator := testTranslator()

	_, err := translator.Translate(context.Background(), Request{
		// The document is malformed, but configuration validation runs
		// first so the mode error wins.
		Document: []byte("<HouseFile"),
		Config:   map[string]any{"translation_mode": "turbo"},
	})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestTranslateSourceValidation(t *testing.T) {
	t.Parallel()
	translator := testTranslator()

	cases := []struct {
		name     string
		document []byte
		want     h2kerr.ParseReason
	}{
		{"nil document is missing", nil, h2kerr.ReasonMissing},
		{"whitespace document is empty", []byte("  \n\t"), h2kerr.ReasonEmpty},
		{"broken markup is malformed", []byte("<HouseFile><House></HouseFile>"), h2kerr.ReasonMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := translator.Translate(context.Background(), Request{Document: tc.document})
			var parseErr *ParsingError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, tc.want, parseErr.Reason)
		})
	}
}

func TestTranslateAddTestWall(t *testing.T) {
	t.Parallel()
	translator := testTranslator()

	result, err := translator.Translate(context.Background(), Request{
		Document: []byte(sourceDocument),
		Config:   map[string]any{"add_test_wall": true},
	})
	require.NoError(t, err)

	output := string(result.Document)
	require.Contains(t, output, `id="Wall1"`)
	require.Contains(t, output, `id="Wall2"`)
	// Nested openings keep their counters independent of the extra wall.
	require.Contains(t, output, `id="Window1"`)
	require.NotContains(t, output, `id="Window2"`)
}

func TestTranslateSurfacesWarnings(t *testing.T) {
	t.Parallel()
	translator := testTranslator()

	// Unknown weather location and no results section: both warn without
	// aborting the translation.
	source := strings.Replace(sourceDocument, "<English>Ottawa</English>", "<English>Gotham</English>", 1)
	start := strings.Index(source, "<AllResults>")
	end := strings.Index(source, "</AllResults>") + len("</AllResults>")
	source = source[:start] + source[end:]

	result, err := translator.Translate(context.Background(), Request{
		Document: []byte(source),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Document)

	messages := make([]string, len(result.Warnings))
	for i, warning := range result.Warnings {
		messages[i] = warning.Message
	}
	require.Contains(t, strings.Join(messages, "\n"), "energy results")
	require.Contains(t, strings.Join(messages, "\n"), "climate-station")
}

func TestTranslateRequiresContext(t *testing.T) {
	t.Parallel()
	translator := testTranslator()

	//lint:ignore SA1012 nil context is the case under test
	_, err := translator.Translate(nil, Request{Document: []byte(sourceDocument)})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = translator.Translate(ctx, Request{Document: []byte(sourceDocument)})
	require.ErrorIs(t, err, context.Canceled)
}
