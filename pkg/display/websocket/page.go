package websocket

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>oledvideo</title>
<style>
body { background: #111; margin: 0; display: flex; height: 100vh; align-items: center; justify-content: center; }
canvas { width: 768px; height: 384px; image-rendering: pixelated; border: 8px solid #222; }
</style>
</head>
<body>
<canvas id="screen" width="128" height="64"></canvas>
<script>
const canvas = document.getElementById("screen");
const ctx = canvas.getContext("2d");
const img = ctx.createImageData(128, 64);
function connect() {
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/frames");
  ws.binaryType = "arraybuffer";
  ws.onmessage = (ev) => {
    const bits = new Uint8Array(ev.data);
    for (let i = 0; i < 128 * 64; i++) {
      const on = (bits[i >> 3] >> (7 - (i & 7))) & 1;
      const v = on ? 255 : 0;
      img.data[i * 4] = v;
      img.data[i * 4 + 1] = v;
      img.data[i * 4 + 2] = v;
      img.data[i * 4 + 3] = 255;
    }
    ctx.putImageData(img, 0, 0);
  };
  ws.onclose = () => setTimeout(connect, 1000);
}
connect();
</script>
</body>
</html>
`
