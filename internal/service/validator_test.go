package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/service"
)

func TestValidateCPF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cpf   string
		errFn require.ErrorAssertionFunc
	}{
		{"Valid masked CPF", "123.456.789-00", require.NoError},
		{"Empty CPF is allowed", "", require.NoError},
		{"Invalid: too short", "123.456.789-0", require.Error},
		{"Invalid: no mask", "12345678900000", require.Error},
		{"Invalid: letters inside", "123.456.78a-00", require.Error},
		{"Invalid: CNPJ shape", "12.345.678/0001-90", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidateCPF(test.cpf)
			test.errFn(t, err)
		})
	}
}

func TestValidateCNPJ(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cnpj  string
		errFn require.ErrorAssertionFunc
	}{
		{"Valid masked CNPJ", "12.345.678/0001-90", require.NoError},
		{"Empty CNPJ is allowed", "", require.NoError},
		{"Invalid: too short", "12.345.678/0001-9", require.Error},
		{"Invalid: no mask", "123456780001900000", require.Error},
		{"Invalid: CPF shape padded", "123.456.789-00xxxx", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidateCNPJ(test.cnpj)
			test.errFn(t, err)
		})
	}
}

func TestValidateNFSLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		link  string
		errFn require.ErrorAssertionFunc
	}{
		{"Valid https URL", "https://www.nfse.gov.br/EmissorNacional", require.NoError},
		{"Valid http URL", "http://localhost:3000/nfse", require.NoError},
		{"Invalid: empty", "", require.Error},
		{"Invalid: whitespace only", "   ", require.Error},
		{"Invalid: no scheme", "www.nfse.gov.br", require.Error},
		{"Invalid: scheme only", "https://", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidateNFSLink(test.link)
			test.errFn(t, err)
		})
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      any
		expected float64
	}{
		{"Number passes through", 450.0, 450.0},
		{"Integer input", 120, 120.0},
		{"Numeric string", "80.50", 80.50},
		{"Comma decimal separator", "450,00", 450.0},
		{"Malformed string coerced to zero", "abc", 0},
		{"Empty string coerced to zero", "", 0},
		{"Negative coerced to zero", -10.0, 0},
		{"Nil coerced to zero", nil, 0},
		{"Bool coerced to zero", true, 0},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.InDelta(t, test.expected, service.ParseValue(test.raw), 1e-9)
		})
	}
}
