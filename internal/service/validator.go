package service

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
)

const (
	// Masked document lengths: NNN.NNN.NNN-NN and NN.NNN.NNN/NNNN-NN.
	CPFLen  = 14
	CNPJLen = 18
)

var (
	cpfRegexp  = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjRegexp = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
)

func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: campo obrigatório: %s", entity.ErrMissingField, fieldName)
	}

	return nil
}

func ValidateCPF(cpf string) error {
	if cpf == "" {
		return nil
	}

	if len(cpf) < CPFLen {
		return fmt.Errorf("%w: CPF incompleto ou inválido", entity.ErrInvalidCPF)
	}

	if !cpfRegexp.MatchString(cpf) {
		return fmt.Errorf("%w: CPF deve estar no formato 000.000.000-00", entity.ErrInvalidCPF)
	}

	return nil
}

func ValidateCNPJ(cnpj string) error {
	if cnpj == "" {
		return nil
	}

	if len(cnpj) < CNPJLen {
		return fmt.Errorf("%w: CNPJ incompleto ou inválido", entity.ErrInvalidCNPJ)
	}

	if !cnpjRegexp.MatchString(cnpj) {
		return fmt.Errorf("%w: CNPJ deve estar no formato 00.000.000/0000-00", entity.ErrInvalidCNPJ)
	}

	return nil
}

func ValidateNFSLink(link string) error {
	if strings.TrimSpace(link) == "" {
		return fmt.Errorf("%w: o link da NFS-e não pode estar vazio", entity.ErrInvalidNFSLink)
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: insira uma URL válida (ex: https://...)", entity.ErrInvalidNFSLink)
	}

	return nil
}

// ParseValue converts form input into a monetary value. Malformed, negative
// or non-finite input is coerced to zero rather than rejected.
func ParseValue(raw any) float64 {
	var v float64

	switch value := raw.(type) {
	case float64:
		v = value
	case int:
		v = float64(value)
	case string:
		normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")

		parsed, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return 0
		}

		v = parsed
	default:
		return 0
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}

	return v
}
