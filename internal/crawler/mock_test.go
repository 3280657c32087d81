package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	crawlerrors "sjsage522/licitacaoworker/pkg/errors"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}

// MockFetcher serves canned HTML by URL and records every request
type MockFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		pages: make(map[string]string),
		errs:  make(map[string]error),
	}
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (Node, error) {
	m.calls = append(m.calls, url)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	html, ok := m.pages[url]
	if !ok {
		return nil, crawlerrors.NewNetwork(url, "fetch unexpected status code: 404", nil)
	}
	return NewDocument(strings.NewReader(html))
}

type listingEntry struct {
	date  string
	title string
	link  string
}

// listingHTML renders a listing page in the portal's markup
func listingHTML(entries ...listingEntry) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><div class="container"><div class="lista-template-licitacao">`)
	for _, e := range entries {
		fmt.Fprintf(&sb, `
		<div class="span12">
			<small class="muted">%s</small>
			<span class="title"><a href="%s">%s</a></span>
		</div>`, e.date, e.link, e.title)
	}
	sb.WriteString(`</div><div class="pagination"><a href="#">Próxima</a></div></div></body></html>`)
	return sb.String()
}

const emptyListingHTML = `<html><body><div class="container"><p>Nenhuma licitação encontrada.</p></div></body></html>`

const detailHTML = `<html><body>
<div class="row-fluid">
	<h4 class="bolder">Objeto</h4>
	<div class="descricao">
		<p>Aquisição de   medicamentos</p>
		<p>para a rede estadual de saúde</p>
	</div>
</div>
<table class="table table-condensed">
	<tr><td>Unidade Administrativa</td><td>SESAU - Secretaria de Estado da Saúde</td></tr>
	<tr><td>Modalidade</td><td>Pregão Eletrônico</td></tr>
	<tr><td>Valor Estimado:</td><td>R$ 1.234.567,89 (estimado)</td></tr>
	<tr><td>Situação</td><td>Aberta</td></tr>
	<tr><td>Data da Abertura</td><td>20/02/2024 09:00</td></tr>
	<tr><td>Observações</td><td>Sessão pública</td></tr>
</table>
<p><a href="https://rondonia.ro.gov.br/wp-content/uploads/edital-101.pdf"><i class="icon-download"></i> Baixar edital</a></p>
</body></html>`

const detailWithoutUnitHTML = `<html><body>
<h4 class="bolder">Objeto</h4>
<div>Contratação de serviços de limpeza</div>
<table class="table-condensed">
	<tr><td>Modalidade</td><td>Concorrência</td></tr>
	<tr><td>Valor Estimado</td><td>R$ 98.000,00</td></tr>
	<tr><td>Situação</td><td>Homologada</td></tr>
	<tr><td>Data da Abertura</td><td>11/03/2024</td></tr>
</table>
<a href="/wp-content/uploads/edital-102.pdf"><i class="icon-download"></i></a>
</body></html>`
