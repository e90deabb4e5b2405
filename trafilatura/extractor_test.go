package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Acme Insurance</title></head>
<body>
	<nav><a href="/">Home</a><a href="/quote">Get a Quote</a></nav>
	<main>
		<article>
			<h1>Commercial Property Insurance</h1>
			<p>We protect warehouses, offices and retail spaces against fire,
			theft and weather damage. Policies are tailored to your square
			footage and inventory value.</p>
			<p>Claims are handled by a dedicated adjuster within two business
			days of filing.</p>
		</article>
	</main>
	<footer>Copyright Acme</footer>
</body>
</html>`

	e := trafilatura.NewExtractor()
	result, err := e.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "warehouses, offices and retail spaces")
	assert.Contains(t, result.ContentHTML, "dedicated adjuster")
}

func TestExtractor_Extract_EmptyInput(t *testing.T) {
	t.Parallel()

	e := trafilatura.NewExtractor()
	_, err := e.Extract("")

	require.Error(t, err)
	assert.Equal(t, offerscan.EINVALID, offerscan.ErrorCode(err))
}
