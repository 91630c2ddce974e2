package opendata

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gahlouzi95/ratp-fountains-api/internal/domain"
)

const exportHeader = "id_ratp;ligne;station;longitude;latitude;id_idm;adresse;code_postal;commune;num_acces;nom_acces;zone_controlee;point_geo"

const sampleExport = exportHeader + "\n" +
	"1970;12;Concorde;2.32088;48.86648;IDFM:463564;Place de la Concorde;75008;Paris;3;Rue Royale;en zone contrôlée;48.86648, 2.32088\n" +
	"2012;A;Vincennes;2.43262;48.84732;IDFM:71651;Avenue de Paris;94300;Vincennes;1;;;48.84732, 2.43262\n"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRead(t *testing.T) {
	t.Run("assigns columns by position", func(t *testing.T) {
		rows, err := NewReader(testLogger()).Read(strings.NewReader(sampleExport))

		require.NoError(t, err)
		require.Len(t, rows, 2)

		first := rows[0]
		assert.Equal(t, "1970", first.RatpID)
		assert.Equal(t, "12", first.Line)
		assert.Equal(t, "Concorde", first.Station)
		assert.Equal(t, "2.32088", first.Longitude)
		assert.Equal(t, "48.86648", first.Latitude)
		assert.Equal(t, "IDFM:463564", first.IdmID)
		assert.Equal(t, "Place de la Concorde", first.Address)
		assert.Equal(t, "75008", first.PostalCode)
		assert.Equal(t, "Paris", first.Commune)
		assert.Equal(t, "3", first.AccessNumber)
		assert.Equal(t, "Rue Royale", first.AccessName)
		assert.Equal(t, "en zone contrôlée", first.ControlledZone)
		assert.Equal(t, "48.86648, 2.32088", first.GeoPoint)
		assert.Equal(t, 2, first.SourceLine)

		second := rows[1]
		assert.Equal(t, "A", second.Line)
		assert.Empty(t, second.AccessName)
		assert.Empty(t, second.ControlledZone)
		assert.Equal(t, 3, second.SourceLine)
	})

	t.Run("strips the byte-order mark", func(t *testing.T) {
		rows, err := NewReader(testLogger()).Read(strings.NewReader("\xEF\xBB\xBF" + sampleExport))

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "1970", rows[0].RatpID)
	})

	t.Run("keeps accented text intact", func(t *testing.T) {
		rows, err := NewReader(testLogger()).Read(strings.NewReader(sampleExport))

		require.NoError(t, err)
		assert.Equal(t, "en zone contrôlée", rows[0].ControlledZone)
	})

	t.Run("quoted field may contain the delimiter", func(t *testing.T) {
		export := exportHeader + "\n" +
			`3001;7;Opéra;2.33;48.87;IDFM:1;"Rue Auber; côté place";75009;Paris;2;Sortie 2;en zone contrôlée;48.87, 2.33` + "\n"

		rows, err := NewReader(testLogger()).Read(strings.NewReader(export))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Rue Auber; côté place", rows[0].Address)
	})

	t.Run("short header is a schema error", func(t *testing.T) {
		export := "id_ratp;ligne;station\n1970;12;Concorde\n"

		_, err := NewReader(testLogger()).Read(strings.NewReader(export))

		var schemaErr *domain.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, 1, schemaErr.Line)
		assert.Equal(t, 13, schemaErr.Expected)
		assert.Equal(t, 3, schemaErr.Got)
	})

	t.Run("ragged row is a schema error", func(t *testing.T) {
		export := sampleExport + "9999;11;Mairie des Lilas;2.41;48.87\n"

		_, err := NewReader(testLogger()).Read(strings.NewReader(export))

		var schemaErr *domain.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, 4, schemaErr.Line)
		assert.Equal(t, 5, schemaErr.Got)
	})

	t.Run("no partial rows on schema error", func(t *testing.T) {
		export := sampleExport + "bad;row\n"

		rows, err := NewReader(testLogger()).Read(strings.NewReader(export))

		require.Error(t, err)
		assert.Nil(t, rows)
	})

	t.Run("drifted header names are tolerated", func(t *testing.T) {
		drifted := strings.Replace(sampleExport, "id_ratp;ligne", "ID_RATP;ligne_ratp", 1)

		rows, err := NewReader(testLogger()).Read(strings.NewReader(drifted))

		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("empty file fails", func(t *testing.T) {
		_, err := NewReader(testLogger()).Read(strings.NewReader(""))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("header-only export yields no rows", func(t *testing.T) {
		rows, err := NewReader(testLogger()).Read(strings.NewReader(exportHeader + "\n"))

		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestReadFile(t *testing.T) {
	t.Run("reads an export from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.csv")
		require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBF"+sampleExport), 0o644))

		rows, err := NewReader(testLogger()).ReadFile(path)

		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewReader(testLogger()).ReadFile(filepath.Join(t.TempDir(), "absent.csv"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open export")
	})
}
