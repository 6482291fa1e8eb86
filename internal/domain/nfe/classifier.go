// Package nfe contém a lógica pura de interpretação das respostas da
// SEFAZ/gateway: classificação de rejeições e extração da chave de acesso.
// Nada aqui toca rede ou banco; tudo é testável isoladamente.
package nfe

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TipoFalha classifica uma rejeição da autoridade fiscal.
type TipoFalha string

const (
	// FalhaDuplicidade: a SEFAZ já conhece uma NF-e com esta numeração.
	// Retransmitir repetiria a mesma rejeição; o caminho de recuperação é
	// consultar ou marcar como autorizada manualmente.
	FalhaDuplicidade TipoFalha = "DUPLICIDADE"
	// FalhaJaCancelada: a nota já consta como cancelada na base da SEFAZ.
	FalhaJaCancelada TipoFalha = "JA_CANCELADA"
	// FalhaOutra: qualquer outra rejeição.
	FalhaOutra TipoFalha = "OUTRA"
)

// CodigoJaCancelada é o código de status da SEFAZ para "NF-e já cancelada".
const CodigoJaCancelada = "218"

// Tabela declarativa de padrões por tipo de falha. Os padrões casam sobre a
// mensagem normalizada (minúscula, sem acentos); novos fraseados da SEFAZ
// entram aqui sem mexer no fluxo de controle.
var padroesFalha = []struct {
	tipo    TipoFalha
	padroes []*regexp.Regexp
}{
	{FalhaDuplicidade, []*regexp.Regexp{
		regexp.MustCompile(`duplicidade de nf-?e`),
	}},
	{FalhaJaCancelada, []*regexp.Regexp{
		regexp.MustCompile(`ja esta cancelada`),
		regexp.MustCompile(`ja cancelada na base`),
	}},
}

// reChaveAcesso captura os 44 dígitos dentro de uma tag "[chNFe: ...]".
var reChaveAcesso = regexp.MustCompile(`(?i)\[\s*chnfe:?\s*(\d{44})\s*\]`)

// Classificar mapeia código + mensagem de uma rejeição para um TipoFalha.
// A tabela de padrões tem precedência sobre o código: uma mensagem de
// duplicidade classifica como duplicidade mesmo sob o código 218. Função
// total: nunca retorna erro, entrada vazia classifica como FalhaOutra.
func Classificar(codigo, mensagem string) TipoFalha {
	msg := normalizar(mensagem)
	for _, grupo := range padroesFalha {
		for _, re := range grupo.padroes {
			if re.MatchString(msg) {
				return grupo.tipo
			}
		}
	}
	if strings.TrimSpace(codigo) == CodigoJaCancelada {
		return FalhaJaCancelada
	}
	return FalhaOutra
}

// ExtrairChave devolve a chave de acesso de 44 dígitos embutida na mensagem
// ("[chNFe: <dígitos>]", tag sem distinção de caixa), ou "" se ausente.
func ExtrairChave(mensagem string) string {
	m := reChaveAcesso.FindStringSubmatch(mensagem)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// normalizar reduz a mensagem a minúsculas sem marcas diacríticas, para que
// "Já está CANCELADA" e "ja esta cancelada" casem com o mesmo padrão.
func normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// RejeicaoAutoridade é o erro tipado para uma rejeição explícita do gateway:
// carrega o tipo classificado e a mensagem crua para auditoria.
type RejeicaoAutoridade struct {
	Tipo     TipoFalha
	Codigo   string
	Mensagem string
}

func (e *RejeicaoAutoridade) Error() string {
	if e.Codigo != "" {
		return fmt.Sprintf("rejeição da autoridade fiscal [%s]: %s", e.Codigo, e.Mensagem)
	}
	return "rejeição da autoridade fiscal: " + e.Mensagem
}

// NovaRejeicao constrói a rejeição já classificada.
func NovaRejeicao(codigo, mensagem string) *RejeicaoAutoridade {
	return &RejeicaoAutoridade{
		Tipo:     Classificar(codigo, mensagem),
		Codigo:   codigo,
		Mensagem: mensagem,
	}
}
