package entity

import "github.com/shopspring/decimal"

// VendaSnapshot é o recorte imutável de uma venda finalizada que origina
// uma NF-e. O agregado de vendas completo (carrinho, pagamentos, caixa)
// vive fora deste módulo; aqui só entra o necessário para emitir.
type VendaSnapshot struct {
	ClienteID   string
	CnpjCpf     string
	Observacoes string
	Itens       []ItemVenda
}

// ItemVenda linha da venda na ordem original do carrinho.
type ItemVenda struct {
	ProdutoID     string
	Quantidade    decimal.Decimal
	PrecoUnitario decimal.Decimal
}
