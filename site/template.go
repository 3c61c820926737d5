package site

// replayHTML is the standalone replay page. The three data arrays and the
// pre-formatted stat strings are injected at render time; everything else is
// static markup and the playback script.
const replayHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Trade Replay</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.4/dist/chart.umd.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/chartjs-adapter-date-fns@3.0.0/dist/chartjs-adapter-date-fns.bundle.min.js"></script>
  <style>
    :root {
      color-scheme: dark;
      font-family: 'Inter', system-ui, -apple-system, sans-serif;
      background-color: #010409;
      color: #f8fafc;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      min-height: 100vh;
      display: flex;
      justify-content: center;
      align-items: flex-start;
      padding: 2.5rem clamp(1.25rem, 4vw, 3rem);
      background:
        radial-gradient(circle at 20% 20%, rgba(1,195,141,0.18), transparent 55%),
        radial-gradient(circle at 80% 10%, rgba(13,191,203,0.15), transparent 45%),
        #010409;
      overflow-x: hidden;
    }
    .app {
      width: min(1280px, 100%);
      display: flex;
      flex-direction: column;
      gap: 2rem;
    }
    .card {
      background: rgba(7,12,24,0.9);
      border: 1px solid rgba(255,255,255,0.08);
      border-radius: 24px;
      padding: clamp(1.25rem, 2vw, 2rem);
      box-shadow: 0 20px 60px rgba(2,6,23,0.7);
    }
    .hero { display: flex; flex-direction: column; gap: 1.5rem; }
    .hero h1 { margin: 0; font-size: clamp(1.9rem, 3vw, 2.8rem); }
    .hero p { margin: 0; color: rgba(248,250,252,0.78); max-width: 640px; }
    .stat-grid {
      display: grid;
      grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
      gap: 1rem;
    }
    .stat-card {
      padding: 1rem 1.2rem;
      border-radius: 18px;
      border: 1px solid rgba(255,255,255,0.08);
      background: rgba(13,19,35,0.85);
      display: flex;
      flex-direction: column;
      gap: 0.3rem;
    }
    .stat-card.primary {
      background: linear-gradient(135deg, rgba(1,195,141,0.35), rgba(13,191,203,0.15));
      border-color: rgba(1,195,141,0.5);
    }
    .stat-card span {
      font-size: 0.75rem;
      text-transform: uppercase;
      letter-spacing: 0.08em;
      color: rgba(248,250,252,0.65);
    }
    .stat-card strong { font-size: 1.6rem; font-weight: 600; }
    .stat-card small { font-size: 0.85rem; color: rgba(248,250,252,0.7); }
    canvas { width: 100% !important; height: 460px !important; }
    .controls {
      display: flex;
      flex-wrap: wrap;
      gap: 1rem;
      align-items: center;
      margin-top: 1.25rem;
    }
    button {
      background: linear-gradient(135deg, #01c38d, #0dbfcb);
      border: none;
      color: #05060b;
      font-weight: 600;
      padding: 0.7rem 1.6rem;
      border-radius: 999px;
      cursor: pointer;
    }
    input[type="range"] { flex: 1 1 240px; accent-color: #01c38d; }
    select {
      background: #0f1625;
      border-radius: 999px;
      border: 1px solid rgba(255,255,255,0.12);
      padding: 0.45rem 0.9rem;
      color: inherit;
    }
    .details {
      display: grid;
      gap: 1.5rem;
      grid-template-columns: repeat(auto-fit, minmax(280px, 1fr));
    }
    .status-panel {
      display: grid;
      gap: 0.8rem;
      grid-template-columns: repeat(auto-fit, minmax(140px, 1fr));
      border: 1px solid rgba(1,195,141,0.25);
    }
    .status-block { display: flex; flex-direction: column; gap: 0.2rem; }
    .status-block span {
      font-size: 0.75rem;
      color: rgba(255,255,255,0.65);
      text-transform: uppercase;
      letter-spacing: 0.07em;
    }
    .status-value { font-size: 1.3rem; font-weight: 600; }
    .status-meta { font-size: 0.85rem; color: rgba(255,255,255,0.65); }
    .trade-card { display: flex; flex-direction: column; gap: 1rem; }
    .trade-log {
      max-height: 300px;
      overflow: auto;
      border-top: 1px solid rgba(255,255,255,0.08);
    }
    .trade-item {
      display: flex;
      justify-content: space-between;
      border-bottom: 1px solid rgba(255,255,255,0.04);
      padding: 0.6rem 0;
      gap: 1rem;
    }
    .trade-item .label { font-weight: 600; font-size: 0.95rem; }
    .trade-item .meta { font-size: 0.85rem; color: rgba(255,255,255,0.65); }
    .pnl-value { font-size: 1.2rem; font-weight: 600; display: flex; align-items: center; }
    .pnl-value.pos { color: #00f5a0; }
    .pnl-value.neg { color: #ff5f8f; }
    .time-label { font-size: 0.95rem; color: rgba(255,255,255,0.75); }
  </style>
</head>
<body>
  <main class="app">
    <header class="hero card">
      <div>
        <h1>Backtest Trade Replay</h1>
        <p>Generated locally from the data in <code>{{.DataLabel}}</code>. Use the controls to scrub through the session.</p>
      </div>
      <div class="stat-grid">
        <div class="stat-card primary">
          <span>Final Equity</span>
          <strong>{{.FinalEquity}}</strong>
          <small>Net return {{.NetReturn}}</small>
        </div>
        <div class="stat-card">
          <span>BTC HODL Benchmark</span>
          <strong>{{.HodlEquity}}</strong>
          <small>HODL return {{.HodlReturn}}</small>
        </div>
        <div class="stat-card">
          <span>Alpha vs HODL</span>
          <strong>{{.Alpha}}</strong>
          <small>Strategy edge vs buy-and-hold</small>
        </div>
        <div class="stat-card">
          <span>Trades Executed</span>
          <strong>{{.TotalTrades}}</strong>
          <small>Win rate {{.WinRate}}</small>
        </div>
        <div class="stat-card">
          <span>Max Drawdown</span>
          <strong>{{.MaxDrawdown}}</strong>
          <small>Peak-to-valley damage</small>
        </div>
        <div class="stat-card">
          <span>Session Duration</span>
          <strong>{{.Runtime}}</strong>
          <small>Captured timeline</small>
        </div>
      </div>
    </header>
    <section class="card chart-card">
      <canvas id="replayChart"></canvas>
      <div class="controls">
        <button id="playButton">Play</button>
        <input id="frameSlider" type="range" min="0" max="{{.MaxFrame}}" value="0">
        <label>
          Speed
          <select id="speedSelect">
            <option value="1">1x</option>
            <option value="2">2x</option>
            <option value="4">4x</option>
            <option value="8">8x</option>
            <option value="10">10x</option>
            <option value="50">50x</option>
            <option value="100">100x</option>
          </select>
        </label>
        <span id="timeLabel" class="time-label"></span>
      </div>
    </section>
    <section class="details">
      <div class="card status-panel" id="statusPanel">
        <div class="status-block">
          <span>Time</span>
          <div class="status-value" id="statusTime">–</div>
        </div>
        <div class="status-block">
          <span>Equity</span>
          <div class="status-value" id="statusEquity">–</div>
        </div>
        <div class="status-block">
          <span>BTC HODL</span>
          <div class="status-value" id="statusHodl">–</div>
        </div>
        <div class="status-block">
          <span>Last Trade</span>
          <div class="status-value" id="statusTrade">No trades yet</div>
        </div>
      </div>
      <div class="card trade-card">
        <h2 style="margin-top:0;">Timeline</h2>
        <div class="trade-log" id="tradeLog"></div>
      </div>
    </section>
  </main>

  <script>
    const portfolioPoints = {{.PortfolioJSON}};
    const tradeEvents = {{.TradeJSON}};
    const completedTrades = {{.CompletedJSON}};
    const ctx = document.getElementById('replayChart').getContext('2d');

    const equityDataset = {
      type: 'line',
      label: 'Equity',
      data: [],
      borderColor: '#00e6a8',
      backgroundColor: 'rgba(0, 230, 168, 0.08)',
      fill: true,
      tension: 0.3,
      pointRadius: 0,
      borderWidth: 2
    };

    const balanceDataset = {
      type: 'line',
      label: 'Balance',
      data: [],
      borderColor: '#3b82f6',
      fill: false,
      tension: 0.15,
      pointRadius: 0,
      borderWidth: 1.2,
      borderDash: [6, 3]
    };

    const hodlDataset = {
      type: 'line',
      label: 'BTC HODL',
      data: [],
      borderColor: '#fbbf24',
      fill: false,
      tension: 0.25,
      pointRadius: 0,
      borderWidth: 1.6,
      borderDash: [3, 3]
    };

    const tradesDataset = {
      type: 'scatter',
      label: 'Trades',
      data: [],
      parsing: false,
      pointRadius: (c) => (c.raw && c.raw.action === 'CLOSE' ? 6 : 4),
      pointHoverRadius: 8,
      pointBackgroundColor: (c) => {
        if (!c.raw) return '#ffffff';
        if (c.raw.action === 'ENTRY') return c.raw.side === 'LONG' ? '#22d3ee' : '#f97316';
        return c.raw.pnl >= 0 ? '#00ff9d' : '#ff4d6d';
      },
      pointBorderColor: 'rgba(0,0,0,0.6)',
      pointBorderWidth: 1
    };

    const chart = new Chart(ctx, {
      data: { datasets: [equityDataset, balanceDataset, hodlDataset, tradesDataset] },
      options: {
        responsive: true,
        animation: false,
        interaction: { mode: 'nearest', intersect: false },
        scales: {
          x: {
            type: 'time',
            time: { tooltipFormat: 'yyyy-MM-dd HH:mm' },
            grid: { color: 'rgba(255,255,255,0.05)' },
            ticks: { color: 'rgba(255,255,255,0.7)' }
          },
          y: {
            title: { display: true, text: 'USD' },
            grid: { color: 'rgba(255,255,255,0.05)' },
            ticks: { color: 'rgba(255,255,255,0.7)' }
          }
        },
        plugins: {
          legend: { position: 'top', labels: { usePointStyle: true } },
          tooltip: {
            callbacks: {
              label: (c) => {
                if (c.dataset.type === 'scatter') {
                  const raw = c.raw;
                  const price = raw.price == null ? '—' : raw.price;
                  return raw.action + ' ' + raw.coin + ' @ ' + price + ' (PnL ' + formatUsd(raw.pnl) + ')';
                }
                return c.dataset.label + ': ' + formatUsd(c.parsed.y);
              }
            }
          }
        }
      }
    });

    const playButton = document.getElementById('playButton');
    const frameSlider = document.getElementById('frameSlider');
    const speedSelect = document.getElementById('speedSelect');
    const timeLabel = document.getElementById('timeLabel');
    const statusTime = document.getElementById('statusTime');
    const statusEquity = document.getElementById('statusEquity');
    const statusHodl = document.getElementById('statusHodl');
    const statusTrade = document.getElementById('statusTrade');
    const tradeLog = document.getElementById('tradeLog');

    let currentFrame = 0;
    let playing = false;
    let rafId = null;
    const maxFrame = Number(frameSlider.max);

    const speeds = { 1: 650, 2: 420, 4: 220, 8: 120, 10: 80, 50: 30, 100: 15 };

    function formatUsd(value) {
      if (value == null || isNaN(value)) return '—';
      return Number(value).toLocaleString(undefined, { minimumFractionDigits: 2, maximumFractionDigits: 2 });
    }

    function formatUsdDisplay(value) {
      const formatted = formatUsd(value);
      return formatted === '—' ? '—' : '$' + formatted;
    }

    function formatTimestamp(value) {
      if (!value) return '—';
      return new Date(value).toLocaleString();
    }

    function formatDuration(seconds) {
      if (seconds == null || isNaN(seconds)) return '—';
      const abs = Math.abs(seconds);
      if (abs >= 86400) return (abs / 86400).toFixed(1) + ' d';
      if (abs >= 3600) return (abs / 3600).toFixed(1) + ' h';
      return (abs / 60).toFixed(0) + ' m';
    }

    function updateStatus(point, latestTrade) {
      statusTime.textContent = new Date(point.timestamp).toLocaleString();
      statusEquity.textContent = formatUsdDisplay(point.equity != null ? point.equity : point.balance);
      statusHodl.textContent = formatUsdDisplay(point.hodl_equity);
      if (latestTrade) {
        const pnlStr = formatUsdDisplay(latestTrade.pnl);
        const durationStr = formatDuration(latestTrade.duration_seconds);
        statusTrade.innerHTML = '<strong>' + latestTrade.coin + ' ' + latestTrade.side + '</strong><br>' +
          '<span class="status-meta">PnL ' + pnlStr + ' · ' + durationStr + '</span>';
      } else {
        statusTrade.textContent = 'No trades yet';
      }
    }

    function renderTradeLog(latestTime) {
      const visible = completedTrades.filter((trade) => {
        const m = trade.exit_timestamp || trade.entry_timestamp;
        return new Date(m) <= latestTime;
      });
      tradeLog.innerHTML = visible
        .slice(-25)
        .reverse()
        .map((trade) => {
          const pnlClass = trade.pnl == null ? '' : (trade.pnl >= 0 ? 'pos' : 'neg');
          return '<div class="trade-item">' +
            '<div>' +
            '<div class="label">' + trade.coin + ' ' + trade.side + '</div>' +
            '<div class="meta">Entry ' + formatTimestamp(trade.entry_timestamp) + ' @ ' + formatUsdDisplay(trade.entry_price) + '</div>' +
            '<div class="meta">Exit ' + formatTimestamp(trade.exit_timestamp) + ' @ ' + formatUsdDisplay(trade.exit_price) + ' · Duration ' + formatDuration(trade.duration_seconds) + '</div>' +
            '</div>' +
            '<div class="pnl-value ' + pnlClass + '">' + formatUsdDisplay(trade.pnl) + '</div>' +
            '</div>';
        }).join('');
    }

    function sliceSeries(frameIdx) {
      const segment = portfolioPoints.slice(0, frameIdx + 1);
      equityDataset.data = segment
        .filter((p) => p.equity != null)
        .map((p) => ({ x: p.timestamp, y: p.equity }));
      balanceDataset.data = segment
        .filter((p) => p.balance != null)
        .map((p) => ({ x: p.timestamp, y: p.balance }));
      const cutoff = new Date(segment[segment.length - 1].timestamp);
      hodlDataset.data = segment
        .filter((p) => p.hodl_equity != null)
        .map((p) => ({ x: p.timestamp, y: p.hodl_equity }));
      tradesDataset.data = tradeEvents
        .filter((evt) => new Date(evt.timestamp) <= cutoff)
        .map((evt) => Object.assign({ x: evt.timestamp, y: evt.plot_value }, evt));
      chart.update('none');
      let latestTrade = null;
      for (let i = completedTrades.length - 1; i >= 0; i--) {
        const trade = completedTrades[i];
        const m = trade.exit_timestamp || trade.entry_timestamp;
        if (new Date(m) <= cutoff) {
          latestTrade = trade;
          break;
        }
      }
      updateStatus(segment[segment.length - 1], latestTrade);
      renderTradeLog(cutoff);
      timeLabel.textContent = cutoff.toLocaleString();
    }

    function step(timestamp) {
      if (!playing) return;
      const delay = speeds[speedSelect.value] || speeds[1];
      if (!step.lastTime || timestamp - step.lastTime >= delay) {
        currentFrame = Math.min(currentFrame + 1, maxFrame);
        frameSlider.value = currentFrame;
        sliceSeries(currentFrame);
        step.lastTime = timestamp;
        if (currentFrame === maxFrame) {
          playing = false;
          playButton.textContent = 'Replay';
          return;
        }
      }
      rafId = requestAnimationFrame(step);
    }

    playButton.addEventListener('click', () => {
      if (playing) {
        playing = false;
        playButton.textContent = 'Play';
        if (rafId) cancelAnimationFrame(rafId);
        return;
      }
      if (currentFrame === maxFrame) {
        currentFrame = 0;
        frameSlider.value = 0;
        sliceSeries(0);
      }
      playing = true;
      playButton.textContent = 'Pause';
      step.lastTime = null;
      rafId = requestAnimationFrame(step);
    });

    frameSlider.addEventListener('input', (event) => {
      currentFrame = Number(event.target.value);
      sliceSeries(currentFrame);
    });

    window.addEventListener('keydown', (event) => {
      if (event.code === 'Space') {
        event.preventDefault();
        playButton.click();
      }
    });

    if (portfolioPoints.length > 0) {
      sliceSeries(0);
      renderTradeLog(new Date(portfolioPoints[0].timestamp));
    }
  </script>
</body>
</html>
`
