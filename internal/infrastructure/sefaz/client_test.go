package sefaz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/pdv-fiscal/internal/application/fiscal"
	"github.com/seu-usuario/pdv-fiscal/internal/domain"
)

var credTeste = fiscal.CredenciaisGateway{Token: "tok-abc", CnpjEmitente: "52390958000130", Ambiente: "homologacao"}

func dadosTeste() fiscal.DadosTransmissao {
	return fiscal.DadosTransmissao{
		Referencia: "nfe-1",
		Numero:     9,
		Serie:      "001",
		Ambiente:   "homologacao",
		ValorTotal: "25.99",
		Itens: []fiscal.ItemTransmissao{
			{ProdutoID: "prod-1", Quantidade: "2", PrecoUnitario: "10.50", PrecoTotal: "21.00"},
		},
	}
}

func TestClientTransmitir(t *testing.T) {
	t.Run("autorizado", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v2/nfe", r.URL.Path)
			assert.Equal(t, "nfe-1", r.URL.Query().Get("ref"))
			assert.Equal(t, "Token tok-abc", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "52390958000130", body["cnpj_emitente"])
			assert.Equal(t, "25.99", body["valor_total"])

			json.NewEncoder(w).Encode(map[string]string{
				"status":    "autorizado",
				"protocolo": "135240000001",
				"chave_nfe": "21240752390958000130550010000000091199820007",
			})
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Transmitir(context.Background(), credTeste, dadosTeste())
		require.NoError(t, err)
		assert.Equal(t, fiscal.SituacaoAutorizada, res.Situacao)
		assert.Equal(t, "135240000001", res.Protocolo)
		assert.Len(t, res.ChaveAcesso, 44)
	})

	t.Run("rejeição vem no corpo de um 422", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{
				"status":   "erro_autorizacao",
				"codigo":   "204",
				"mensagem": "Rejeicao: Duplicidade de NF-e",
			})
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Transmitir(context.Background(), credTeste, dadosTeste())
		require.NoError(t, err, "rejeição de documento não é erro de transporte")
		assert.Equal(t, fiscal.SituacaoRejeitada, res.Situacao)
		assert.Equal(t, "204", res.Codigo)
	})

	t.Run("em processamento", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"status": "processando_autorizacao"})
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Transmitir(context.Background(), credTeste, dadosTeste())
		require.NoError(t, err)
		assert.Equal(t, fiscal.SituacaoEmProcessamento, res.Situacao)
	})

	t.Run("timeout do contexto é falha de transporte", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			json.NewEncoder(w).Encode(map[string]string{"status": "autorizado"})
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := NewClient(srv.URL).Transmitir(ctx, credTeste, dadosTeste())
		assert.ErrorIs(t, err, domain.ErrTransporteFalhou)
	})

	t.Run("5xx é falha de transporte", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "internal", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Transmitir(context.Background(), credTeste, dadosTeste())
		assert.ErrorIs(t, err, domain.ErrTransporteFalhou)
	})

	t.Run("corpo imparseável é falha de transporte", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html>gateway error</html>"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Transmitir(context.Background(), credTeste, dadosTeste())
		assert.ErrorIs(t, err, domain.ErrTransporteFalhou)
	})

	t.Run("servidor fora do ar é falha de transporte", func(t *testing.T) {
		srv := httptest.NewServer(nil)
		srv.Close()

		_, err := NewClient(srv.URL).Transmitir(context.Background(), credTeste, dadosTeste())
		assert.ErrorIs(t, err, domain.ErrTransporteFalhou)
	})
}

func TestClientConsultar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/nfe/nfe-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "cancelado",
			"protocolo": "135240000002",
			"mensagem":  "cancelamento homologado",
		})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Consultar(context.Background(), credTeste, "nfe-1")
	require.NoError(t, err)
	assert.Equal(t, fiscal.SituacaoCancelada, res.Situacao)
	assert.Equal(t, "135240000002", res.Protocolo)
}

func TestClientCancelar(t *testing.T) {
	t.Run("homologado", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v2/nfe/nfe-1", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "erro operacional de digitacao", body["justificativa"])

			json.NewEncoder(w).Encode(map[string]string{"status": "cancelado", "protocolo": "135240000003"})
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Cancelar(context.Background(), credTeste, "nfe-1", "erro operacional de digitacao")
		require.NoError(t, err)
		assert.True(t, res.Sucesso)
		assert.Equal(t, "135240000003", res.Protocolo)
	})

	t.Run("recusado pela autoridade", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"status":   "erro_cancelamento",
				"codigo":   "501",
				"mensagem": "prazo de cancelamento superior ao permitido",
			})
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Cancelar(context.Background(), credTeste, "nfe-1", "erro operacional de digitacao")
		require.NoError(t, err)
		assert.False(t, res.Sucesso)
		assert.Equal(t, "501", res.Codigo)
	})
}
