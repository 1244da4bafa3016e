package domain

import (
	"fmt"
	"strings"
)

// DefaultCountry é o país padrão dos endereços
const DefaultCountry = "Brasil"

// validUFs contém as siglas de estado aceitas no local de registro
var validUFs = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {},
	"ES": {}, "GO": {}, "MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {},
	"PB": {}, "PR": {}, "PE": {}, "PI": {}, "RJ": {}, "RN": {}, "RS": {},
	"RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// IsValidUF verifica se a sigla é uma UF brasileira
func IsValidUF(uf string) bool {
	_, ok := validUFs[strings.ToUpper(uf)]
	return ok
}

// Address representa o local de registro do veículo. Imutável após construção.
type Address struct {
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	PostalCode   string  `json:"postal_code"`
}

// NewAddress cria um endereço validado. O CEP é normalizado para 8 dígitos
// e o estado para maiúsculas; país vazio assume Brasil.
func NewAddress(street, number, neighborhood, city, state, postalCode, country string, complement *string) (*Address, error) {
	if street == "" || number == "" || neighborhood == "" || city == "" {
		return nil, fmt.Errorf("%w: rua, número, bairro e cidade são obrigatórios", ErrInvalidAddress)
	}

	if len(state) != 2 {
		return nil, fmt.Errorf("%w: estado deve ter 2 caracteres", ErrInvalidAddress)
	}

	normalized := strings.ReplaceAll(postalCode, "-", "")
	if len(normalized) != 8 || !isDigits(normalized) {
		return nil, fmt.Errorf("%w: CEP deve ter 8 dígitos", ErrInvalidAddress)
	}

	if country == "" {
		country = DefaultCountry
	}

	return &Address{
		Street:       street,
		Number:       number,
		Complement:   complement,
		Neighborhood: neighborhood,
		City:         city,
		State:        strings.ToUpper(state),
		Country:      country,
		PostalCode:   normalized,
	}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (a *Address) String() string {
	parts := []string{
		fmt.Sprintf("%s, %s", a.Street, a.Number),
	}

	if a.Complement != nil {
		parts = append(parts, *a.Complement)
	}

	parts = append(parts,
		a.Neighborhood,
		fmt.Sprintf("%s - %s", a.City, a.State),
		a.Country,
		a.PostalCode,
	)

	return strings.Join(parts, ", ")
}
