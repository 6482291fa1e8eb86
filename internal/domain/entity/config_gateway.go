package entity

import "time"

// ConfigGateway guarda, por empresa, as credenciais e preferências do
// gateway de emissão fiscal. Os tokens nunca são ecoados de volta ao
// chamador — apenas um flag configurado/não-configurado.
type ConfigGateway struct {
	EmpresaID        string
	AmbienteAtivo    string // AmbienteHomologacao | AmbienteProducao
	TokenHomologacao string
	TokenProducao    string
	CnpjEmitente     string
	SeriePadrao      string
	NaturezaOperacao string

	// Override manual do próximo número, por ambiente. Consumido (e limpo)
	// na primeira emissão após ser definido; usado para realinhar a
	// numeração local com a da SEFAZ após drift.
	ProximoNumeroHomologacao *int64
	ProximoNumeroProducao    *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Token devolve a credencial do ambiente pedido.
func (c *ConfigGateway) Token(ambiente string) string {
	if ambiente == AmbienteProducao {
		return c.TokenProducao
	}
	return c.TokenHomologacao
}

// TokenConfigurado indica se há credencial para o ambiente, sem expô-la.
func (c *ConfigGateway) TokenConfigurado(ambiente string) bool {
	return c.Token(ambiente) != ""
}

// Serie devolve a série padrão, caindo para SerieDefault se vazia.
func (c *ConfigGateway) Serie() string {
	if c.SeriePadrao == "" {
		return SerieDefault
	}
	return c.SeriePadrao
}
