package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	Logger "github.com/polis-analysis/postmeta/utils/log"
)

// Single dashboard page. Layout is deliberately minimal; the page just
// drives the extract API and surfaces the two CSV download links.
var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Post Metadata Dashboard</title>
  <style>
    body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
    input, textarea { width: 100%; padding: 0.5rem; margin: 0.25rem 0 1rem; box-sizing: border-box; }
    button { padding: 0.5rem 1.5rem; }
    #error { color: #b00020; white-space: pre-wrap; }
    table { border-collapse: collapse; margin-top: 1rem; }
    td, th { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
  </style>
</head>
<body>
  <h1>Post Metadata Dashboard</h1>
  <p>Paste a Facebook, YouTube, TikTok or Reddit post URL. News/blog support is coming soon.</p>
  <label>Post URL</label>
  <input id="url" type="text" placeholder="https://youtu.be/...">
  <label>Facebook cookie string (optional, session only)</label>
  <textarea id="cookies" rows="2" placeholder="key1=val1; key2=val2"></textarea>
  <button onclick="extract()">Extract</button>
  <p id="error"></p>
  <div id="result"></div>
  <script>
    async function extract() {
      document.getElementById('error').textContent = '';
      document.getElementById('result').innerHTML = '';
      const res = await fetch('/api/extract', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({
          url: document.getElementById('url').value,
          fb_cookies: document.getElementById('cookies').value
        })
      });
      const data = await res.json();
      if (!res.ok) {
        document.getElementById('error').textContent =
          (data.platform ? data.platform + ': ' : '') + data.error;
        return;
      }
      const rows = Object.entries(data.post)
        .map(([k, v]) => '<tr><th>' + k + '</th><td>' + JSON.stringify(v) + '</td></tr>')
        .join('');
      document.getElementById('result').innerHTML =
        '<table>' + rows + '</table>' +
        '<p><a href="' + data.post_csv_url + '">Download post CSV</a> | ' +
        '<a href="' + data.op_csv_url + '">Download OP CSV</a></p>';
    }
  </script>
</body>
</html>`))

func (s *Server) dashboardPage(c *gin.Context) {
	buf := &bytes.Buffer{}
	if err := dashboardTemplate.Execute(buf, nil); err != nil {
		Logger.Log.Errorf("dashboard render failed: %v", err)
		c.String(http.StatusInternalServerError, "dashboard unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
