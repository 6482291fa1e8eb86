package nfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/nfe"
)

const chaveTeste = "21240752390958000130550010000000091199820007"

// ──────────────────────────────────────────────────────────────────────────────
// Classificar — duplicidade
// ──────────────────────────────────────────────────────────────────────────────

func TestClassificar_Duplicidade(t *testing.T) {
	casos := []string{
		"Rejeição: 539 Duplicidade de NF-e",
		"rejeição: 539 duplicidade de nf-e",
		"REJEIÇÃO: 539 DUPLICIDADE DE NF-E",
		"Rejeição: [nItem:1] 539 Duplicidade de NFe [chNFe: " + chaveTeste + "]",
	}
	for _, msg := range casos {
		assert.Equal(t, nfe.FalhaDuplicidade, nfe.Classificar("539", msg),
			"mensagem deveria classificar como duplicidade: %q", msg)
	}
}

func TestClassificar_DuplicidadeIndependeDoCodigo(t *testing.T) {
	// A classificação de duplicidade vem do texto; o código é irrelevante.
	assert.Equal(t, nfe.FalhaDuplicidade, nfe.Classificar("", "Duplicidade de NF-e"))
}

func TestClassificar_TextoTemPrecedenciaSobreCodigo(t *testing.T) {
	// Mensagem de duplicidade classifica como duplicidade mesmo sob o
	// código 218: a tabela de padrões vem antes do código.
	assert.Equal(t, nfe.FalhaDuplicidade, nfe.Classificar("218", "Rejeição: 539 Duplicidade de NF-e"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Classificar — já cancelada
// ──────────────────────────────────────────────────────────────────────────────

func TestClassificar_JaCanceladaPorCodigo218(t *testing.T) {
	assert.Equal(t, nfe.FalhaJaCancelada, nfe.Classificar("218", "NF-e já cancelada"))
	assert.Equal(t, nfe.FalhaJaCancelada, nfe.Classificar(" 218 ", "qualquer mensagem"))
}

func TestClassificar_JaCanceladaPorMensagem(t *testing.T) {
	casos := []string{
		"A NF-e já está cancelada",
		"nf-e JÁ ESTÁ CANCELADA na SEFAZ",
		"nota ja esta cancelada", // sem acentos
		"NF-e já cancelada na base de dados da SEFAZ",
	}
	for _, msg := range casos {
		assert.Equal(t, nfe.FalhaJaCancelada, nfe.Classificar("", msg),
			"mensagem deveria classificar como já cancelada: %q", msg)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Classificar — outra / totalidade
// ──────────────────────────────────────────────────────────────────────────────

func TestClassificar_Outra(t *testing.T) {
	casos := []struct{ codigo, msg string }{
		{"225", "Rejeição: Falha no Schema XML"},
		{"", ""},
		{"999", "erro desconhecido"},
		{"539", "numeração inutilizada"}, // código de duplicidade sem o texto não basta
	}
	for _, c := range casos {
		assert.Equal(t, nfe.FalhaOutra, nfe.Classificar(c.codigo, c.msg))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ExtrairChave
// ──────────────────────────────────────────────────────────────────────────────

func TestExtrairChave(t *testing.T) {
	msg := "Rejeição: [nItem:1] 539 Duplicidade de NF-e [chNFe: " + chaveTeste + "]"
	assert.Equal(t, chaveTeste, nfe.ExtrairChave(msg))
}

func TestExtrairChave_TagSemDistincaoDeCaixa(t *testing.T) {
	assert.Equal(t, chaveTeste, nfe.ExtrairChave("[CHNFE: "+chaveTeste+"]"))
	assert.Equal(t, chaveTeste, nfe.ExtrairChave("[chnfe:"+chaveTeste+"]"))
}

func TestExtrairChave_Ausente(t *testing.T) {
	assert.Equal(t, "", nfe.ExtrairChave("no key here"))
	assert.Equal(t, "", nfe.ExtrairChave(""))
	// 43 dígitos não é uma chave válida
	assert.Equal(t, "", nfe.ExtrairChave("[chNFe: "+chaveTeste[:43]+"]"))
}

// ──────────────────────────────────────────────────────────────────────────────
// RejeicaoAutoridade
// ──────────────────────────────────────────────────────────────────────────────

func TestNovaRejeicao_ClassificaEGuardaMensagemCrua(t *testing.T) {
	msg := "Rejeição: 539 Duplicidade de NF-e"
	rej := nfe.NovaRejeicao("539", msg)

	assert.Equal(t, nfe.FalhaDuplicidade, rej.Tipo)
	assert.Equal(t, msg, rej.Mensagem, "a mensagem crua deve ser preservada para auditoria")
	assert.Contains(t, rej.Error(), "539")
	assert.Contains(t, rej.Error(), msg)
}
