package browser

import (
	"encoding/json"
	"fmt"
)

// jsLiteral renders v as a JavaScript literal.
func jsLiteral(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

const jsPrelude = `
const __visible = (el) => !!el && !!(el.offsetWidth || el.offsetHeight || el.getClientRects().length);
const __docAt = (path) => {
  let doc = document;
  for (const i of path) {
    const frames = doc.querySelectorAll('iframe, frame');
    if (i >= frames.length) return null;
    try { doc = frames[i].contentDocument; } catch (e) { return null; }
    if (!doc) return null;
  }
  return doc;
};
const __find = (doc, css, text) => {
  const candidates = Array.from(doc.querySelectorAll(css || '*'));
  const matches = candidates.filter((el) => __visible(el) && (!text || (el.innerText || '').includes(text)));
  if (!text || css) return matches[0] || null;
  const exact = matches.filter((el) => (el.innerText || '').trim() === text);
  return exact[exact.length - 1] || null;
};
`

func visibleTextScript(selector string) string {
	return fmt.Sprintf(`(() => {%s
  const el = document.querySelector(%s);
  return __visible(el) ? (el.innerText || '').trim() : '';
})()`, jsPrelude, jsLiteral(selector))
}

func locatorScript(loc Locator, activate bool) string {
	return fmt.Sprintf(`(() => {%s
  const el = __find(document, %s, %s);
  if (!el) return false;
  if (%t) el.click();
  return true;
})()`, jsPrelude, jsLiteral(loc.CSS), jsLiteral(loc.Text), activate)
}

const framesScript = `(() => {` + jsPrelude + `
  const out = [{path: [], url: document.location.href}];
  const walk = (doc, path) => {
    const frames = doc.querySelectorAll('iframe, frame');
    frames.forEach((f, i) => {
      let child = null;
      try { child = f.contentDocument; } catch (e) { child = null; }
      if (!child) return;
      const p = path.concat([i]);
      out.push({path: p, url: (child.location && child.location.href) || f.src || ''});
      walk(child, p);
    });
  };
  walk(document, []);
  return out;
})()`

type frameHTML struct {
	Visible bool   `json:"visible"`
	HTML    string `json:"html"`
}

func frameHTMLScript(path []int, selector string) string {
	if path == nil {
		path = []int{}
	}
	return fmt.Sprintf(`(() => {%s
  const doc = __docAt(%s);
  if (!doc) return {visible: false, html: ''};
  const el = doc.querySelector(%s);
  if (!__visible(el)) return {visible: false, html: ''};
  return {visible: true, html: el.outerHTML};
})()`, jsPrelude, jsLiteral(path), jsLiteral(selector))
}
