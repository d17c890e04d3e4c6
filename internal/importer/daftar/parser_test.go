package daftar_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/otabekj/dukon/internal/importer/daftar"
)

func TestParser_Parse_Semicolon(t *testing.T) {
	csv := "Eski daftar 2023\n\n" +
		"ism;telefon;manzil;qarz\n" +
		"Ali aka;+998901234567;Chilonzor;1 250 000\n" +
		"Vali aka;;;50000,50\n" +
		";;;\n"

	clients, err := daftar.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, "Ali aka", clients[0].Name)
	assert.Equal(t, "+998901234567", clients[0].Phone)
	assert.Equal(t, "Chilonzor", clients[0].Address)
	assert.Equal(t, 1250000.0, clients[0].InitialDebt)

	assert.Equal(t, "Vali aka", clients[1].Name)
	assert.Equal(t, 50000.50, clients[1].InitialDebt)
}

func TestParser_Parse_CommaEnglishHeaders(t *testing.T) {
	csv := "name,phone,initial_debt\n" +
		"Ali aka,+998901234567,50000\n"

	clients, err := daftar.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, clients, 1)

	assert.Equal(t, "Ali aka", clients[0].Name)
	assert.Equal(t, 50000.0, clients[0].InitialDebt)
}

func TestParser_Parse_NoDebtColumn(t *testing.T) {
	csv := "ism;telefon\nAli aka;+998901234567\n"

	clients, err := daftar.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Zero(t, clients[0].InitialDebt)
}

func TestParser_Parse_Windows1251(t *testing.T) {
	// An old Excel export with Cyrillic names in windows-1251.
	utf8CSV := "ism;qarz\nЎктам ака;75000\n"

	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	clients, err := daftar.NewParser().Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, clients, 1)

	assert.Equal(t, "Ўктам ака", clients[0].Name)
	assert.Equal(t, 75000.0, clients[0].InitialDebt)
}

func TestParser_Parse_BadDebt(t *testing.T) {
	csv := "ism;qarz\nAli aka;ellik ming\n"

	_, err := daftar.NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad initial debt")
}

func TestParser_Parse_NoHeader(t *testing.T) {
	csv := "hech narsa;yo'q\n1;2\n"

	_, err := daftar.NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row found")
}
