package bling

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/balcaohq/backend/internal/domain"
)

// The ERP has shipped two response envelopes over its API versions:
//
//	current: {"data": [ {...}, ... ]}
//	legacy:  {"retorno": {"produtos": [ {"produto": {...}}, ... ]}}
//
// parseProducts tries each schema in turn and normalizes both into
// domain.ProductRecord. Only a body where the product list cannot be
// located at all is an error; malformed individual entries degrade to
// the documented defaults.

// flexPrice tolerates every price representation the ERP has used:
// a JSON number, a decimal string, or a nested {"preco": value} object.
type flexPrice struct {
	value string
}

func (p *flexPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		p.value = s
	case '{':
		var nested struct {
			Preco flexPrice `json:"preco"`
		}
		if err := json.Unmarshal(data, &nested); err != nil {
			return nil
		}
		p.value = nested.Preco.value
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil
		}
		p.value = strconv.FormatFloat(f, 'f', 2, 64)
	}
	return nil
}

// String returns the normalized price, substituting the default when the
// upstream omitted it.
func (p flexPrice) String() string {
	if p.value == "" {
		return domain.DefaultPrice
	}
	return p.value
}

// apiProduct is a product entry as either API version serializes it.
// The current version names products "nome", the legacy one "descricao".
type apiProduct struct {
	Nome      string          `json:"nome"`
	Descricao string          `json:"descricao"`
	Preco     flexPrice       `json:"preco"`
	Variacoes json.RawMessage `json:"variacoes"`
}

type apiVariant struct {
	Nome      string    `json:"nome"`
	Descricao string    `json:"descricao"`
	Preco     flexPrice `json:"preco"`
}

type currentEnvelope struct {
	Data []apiProduct `json:"data"`
}

type legacyEnvelope struct {
	Retorno struct {
		Produtos []struct {
			Produto apiProduct `json:"produto"`
		} `json:"produtos"`
	} `json:"retorno"`
}

// parseProducts locates the product list under a known envelope and
// normalizes every entry. An empty list is a valid result; a body with
// neither envelope key is domain.ErrMalformedResponse.
func parseProducts(body []byte) ([]domain.ProductRecord, error) {
	var probe struct {
		Data    json.RawMessage `json:"data"`
		Retorno json.RawMessage `json:"retorno"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, domain.ErrMalformedResponse
	}

	switch {
	case probe.Data != nil:
		var envelope currentEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, domain.ErrMalformedResponse
		}
		records := make([]domain.ProductRecord, 0, len(envelope.Data))
		for _, entry := range envelope.Data {
			records = append(records, normalizeProduct(entry))
		}
		return records, nil

	case probe.Retorno != nil:
		var envelope legacyEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, domain.ErrMalformedResponse
		}
		// Legacy "nothing found" responses carry retorno.erros instead of
		// retorno.produtos; that is an empty catalog, not an error.
		records := make([]domain.ProductRecord, 0, len(envelope.Retorno.Produtos))
		for _, wrapper := range envelope.Retorno.Produtos {
			records = append(records, normalizeProduct(wrapper.Produto))
		}
		return records, nil
	}

	return nil, domain.ErrMalformedResponse
}

// normalizeProduct maps an upstream entry onto the uniform record,
// substituting defaults for missing fields.
func normalizeProduct(entry apiProduct) domain.ProductRecord {
	return domain.ProductRecord{
		Name:     firstNonEmpty(entry.Nome, entry.Descricao, domain.DefaultProductName),
		Price:    entry.Preco.String(),
		Variants: normalizeVariants(entry.Variacoes),
	}
}

// normalizeVariants decodes the variant list, which the current API ships
// as a flat array and the legacy API as an array of {"variacao": {...}}
// wrappers. Undecodable variant data degrades to no variants.
func normalizeVariants(raw json.RawMessage) []domain.Variant {
	if len(raw) == 0 {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	var variants []domain.Variant
	for _, element := range elements {
		var entry apiVariant
		if err := json.Unmarshal(element, &entry); err != nil {
			continue
		}
		if entry.Nome == "" && entry.Descricao == "" && entry.Preco.value == "" {
			// Possibly a legacy wrapper around the actual variant.
			var wrapper struct {
				Variacao apiVariant `json:"variacao"`
			}
			if err := json.Unmarshal(element, &wrapper); err != nil {
				continue
			}
			entry = wrapper.Variacao
		}
		variants = append(variants, domain.Variant{
			Name:  firstNonEmpty(entry.Nome, entry.Descricao, domain.DefaultProductName),
			Price: entry.Preco.String(),
		})
	}
	return variants
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
