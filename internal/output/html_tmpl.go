package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Heading}}</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --muted: #6c757d; --fail: #dc3545; --ok: #28a745; --accent: #0d6efd;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --muted: #adb5bd; --fail: #f55; --ok: #4caf50; --accent: #5b9aff;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1200px; margin: 0 auto; }
header { margin-bottom: 1.5rem; text-align: center; }
header h1 { font-size: 1.75rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
.controls { display: grid; gap: .75rem; margin-bottom: 1.5rem; }
.controls select { width: 100%; padding: .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); font-size: .9375rem; }
.range { display: grid; grid-template-columns: auto 1fr auto; gap: .5rem; align-items: center; font-size: .8125rem; }
.range input { width: 100%; }
.marks { display: flex; justify-content: space-between; color: var(--muted); font-size: .75rem; }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin-bottom: 1.5rem; }
.chart-box h3 { font-size: .9375rem; margin-bottom: .5rem; text-align: center; }
.placeholder { color: var(--muted); text-align: center; padding: 3rem 0; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .375rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
.hidden { display: none; }
</style>
</head>
<body>
<header>
  <h1>{{.Heading}}</h1>
  <p>Generated {{.GeneratedAt}} &middot; revision <span id="revision">{{.Revision}}</span>{{if not .Live}} &middot; static snapshot{{end}}</p>
</header>

<section class="controls" id="controls">
  <select id="site-dropdown"{{if not .Live}} disabled{{end}}>
    <option value="" disabled>{{.Placeholder}}</option>
    {{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
    {{end}}
  </select>
  <div class="range">
    <label for="payload-low">Payload range (Kg):</label>
    <div>
      <input type="range" id="payload-low" min="{{.Domain.SliderMin}}" max="{{.Domain.SliderMax}}" step="{{.Domain.Step}}" value="{{.Selection.Payload.Low}}"{{if not .Live}} disabled{{end}}>
      <input type="range" id="payload-high" min="{{.Domain.SliderMin}}" max="{{.Domain.SliderMax}}" step="{{.Domain.Step}}" value="{{.Selection.Payload.High}}"{{if not .Live}} disabled{{end}}>
      <div class="marks">{{range .Domain.Marks}}<span>{{.Label}}</span>{{end}}</div>
    </div>
    <output id="payload-value">{{.Selection.Payload.Low}} - {{.Selection.Payload.High}}</output>
  </div>
</section>

<section class="chart-box" id="success-pie-chart">
  <h3 id="proportion-title">{{.Proportion.Title}}</h3>
  <div id="chart-proportion"></div>
  <table id="proportion-table"{{if .Proportion.Empty}} class="hidden"{{end}}>
    <thead><tr><th>{{.Proportion.Encoding.Names}}</th><th>Launches</th></tr></thead>
    <tbody>{{range .Proportion.Slices}}<tr><td>{{.Label}}</td><td>{{.Count}}</td></tr>{{end}}</tbody>
  </table>
</section>

<section class="chart-box" id="success-payload-scatter-chart">
  <h3 id="correlation-title">{{.Correlation.Title}}</h3>
  <div id="chart-correlation"></div>
</section>

<script>
var state = {{json .State}};
var palette = ["#0d6efd","#6f42c1","#20c997","#fd7e14","#e83e8c","#17a2b8","#6c757d","#ffc107"];
var classColors = ["var(--fail)","var(--ok)"];

function svgEl(tag, attrs) {
  var el = document.createElementNS("http://www.w3.org/2000/svg", tag);
  for (var k in attrs) el.setAttribute(k, attrs[k]);
  return el;
}

function placeholder(c, spec) {
  var p = document.createElement("p");
  p.className = "placeholder";
  p.textContent = spec.placeholder;
  c.appendChild(p);
}

function renderPie(id, spec) {
  var c = document.getElementById(id); if (!c) return;
  c.innerHTML = "";
  if (spec.empty) { placeholder(c, spec); return; }
  var slices = spec.slices || [];
  var svg = svgEl("svg", {width:"100%", viewBox:"0 0 320 170"});
  var cx=85, cy=85, r=75, angle=-Math.PI/2;
  for (var i = 0; i < slices.length; i++) {
    var color = classColors[slices[i]["class"]] || palette[i%palette.length];
    if (slices[i].fraction >= 1) {
      svg.appendChild(svgEl("circle", {cx:cx, cy:cy, r:r, fill:color}));
      continue;
    }
    var sweep = slices[i].fraction*Math.PI*2;
    var x1=cx+r*Math.cos(angle), y1=cy+r*Math.sin(angle);
    angle += sweep;
    var x2=cx+r*Math.cos(angle), y2=cy+r*Math.sin(angle);
    var large = sweep > Math.PI ? 1 : 0;
    var d = "M"+cx+","+cy+" L"+x1+","+y1+" A"+r+","+r+" 0 "+large+",1 "+x2+","+y2+" Z";
    svg.appendChild(svgEl("path", {d:d, fill:color}));
  }
  for (var j = 0; j < slices.length; j++) {
    var ly = 20 + j*20;
    svg.appendChild(svgEl("rect", {x:185, y:ly-9, width:11, height:11, fill:classColors[slices[j]["class"]] || palette[j%palette.length], rx:2}));
    var lt = svgEl("text", {x:202, y:ly+1, fill:"currentColor", "font-size":"12"});
    lt.textContent = slices[j].label+" ("+slices[j].count+", "+(slices[j].fraction*100).toFixed(1)+"%)";
    svg.appendChild(lt);
  }
  c.appendChild(svg);
}

function renderScatter(id, spec, domain) {
  var c = document.getElementById(id); if (!c) return;
  c.innerHTML = "";
  if (spec.empty) { placeholder(c, spec); return; }
  var series = spec.series || [];
  var w=640, h=260, left=50, right=130, top=15, bottom=40;
  var x0 = domain.slider_min, x1 = domain.slider_max > x0 ? domain.slider_max : x0+1;
  function sx(v) { return left + (v-x0)/(x1-x0)*(w-left-right); }
  function sy(v) { return top + (1-v)*(h-top-bottom-20) + 10; }
  var svg = svgEl("svg", {width:"100%", viewBox:"0 0 "+w+" "+h});
  svg.appendChild(svgEl("line", {x1:left, y1:h-bottom, x2:w-right, y2:h-bottom, stroke:"currentColor", "stroke-width":"0.5"}));
  svg.appendChild(svgEl("line", {x1:left, y1:top, x2:left, y2:h-bottom, stroke:"currentColor", "stroke-width":"0.5"}));
  [0, 1].forEach(function(v) {
    var t = svgEl("text", {x:left-8, y:sy(v)+4, "text-anchor":"end", fill:"currentColor", "font-size":"11"});
    t.textContent = v;
    svg.appendChild(t);
  });
  (domain.marks || []).forEach(function(m) {
    if (m.value > x1) return;
    var t = svgEl("text", {x:sx(m.value), y:h-bottom+14, "text-anchor":"middle", fill:"currentColor", "font-size":"11"});
    t.textContent = m.label;
    svg.appendChild(t);
  });
  var xl = svgEl("text", {x:(left+w-right)/2, y:h-6, "text-anchor":"middle", fill:"currentColor", "font-size":"11"});
  xl.textContent = spec.encoding.x;
  svg.appendChild(xl);
  for (var i = 0; i < series.length; i++) {
    var color = palette[i%palette.length];
    var pts = series[i].points || [];
    for (var k = 0; k < pts.length; k++) {
      var dot = svgEl("circle", {cx:sx(pts[k].x), cy:sy(pts[k].y), r:4, fill:color, "fill-opacity":"0.75"});
      var tip = svgEl("title", {});
      tip.textContent = series[i].name+": "+pts[k].x+" kg, class "+pts[k].y;
      dot.appendChild(tip);
      svg.appendChild(dot);
    }
    var ly = top + 10 + i*18;
    svg.appendChild(svgEl("circle", {cx:w-right+20, cy:ly-4, r:5, fill:color}));
    var lt = svgEl("text", {x:w-right+30, y:ly, fill:"currentColor", "font-size":"11"});
    lt.textContent = series[i].name;
    svg.appendChild(lt);
  }
  c.appendChild(svg);
}

function render(s) {
  if (s.revision <= state.revision) return;
  state.revision = s.revision;
  state.selection = s.selection;
  state.proportion = s.proportion;
  state.correlation = s.correlation;
  document.getElementById("revision").textContent = s.revision;
  document.getElementById("proportion-title").textContent = s.proportion.title;
  document.getElementById("correlation-title").textContent = s.correlation.title;
  document.getElementById("proportion-table").classList.add("hidden");
  document.getElementById("payload-value").textContent = s.selection.payload.low+" - "+s.selection.payload.high;
  document.getElementById("payload-low").value = s.selection.payload.low;
  document.getElementById("payload-high").value = s.selection.payload.high;
  document.getElementById("site-dropdown").value = s.selection.site;
  renderPie("chart-proportion", s.proportion);
  renderScatter("chart-correlation", s.correlation, state.domain);
}

function put(path, body) {
  return fetch(path, {method:"PUT", headers:{"Content-Type":"application/json"}, body:JSON.stringify(body)})
    .then(function(r) { return r.json().then(function(b) { if (!r.ok) throw new Error(b.error); return b; }); })
    .then(render)
    .catch(function(e) { console.error(e); });
}

(function(){
  renderPie("chart-proportion", state.proportion);
  renderScatter("chart-correlation", state.correlation, state.domain);
  if (!state.live) return;
  document.getElementById("site-dropdown").addEventListener("change", function(ev) {
    put("/api/selection/site", {site: ev.target.value});
  });
  var lo = document.getElementById("payload-low"), hi = document.getElementById("payload-high");
  function onRange() {
    put("/api/selection/payload", {low: parseFloat(lo.value), high: parseFloat(hi.value)});
  }
  lo.addEventListener("change", onRange);
  hi.addEventListener("change", onRange);
  if (window.EventSource) {
    new EventSource("/api/events").addEventListener("snapshot", function(ev) {
      render(JSON.parse(ev.data));
    });
  }
})();
</script>
</body>
</html>`
