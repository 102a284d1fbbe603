package api

import "net/http"

// HandleIndex GET / - ブラウザ用のアップロード画面
func HandleIndex(w http.ResponseWriter, r *http.Request) {

	html := `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>Fashion Image Generator</title>
<script src="https://cdn.tailwindcss.com"></script>
<style>
body { font-family: Inter, system-ui, -apple-system, Segoe UI, Roboto, sans-serif; }
.drop-zone{width:100%;height:320px;background:#f3f4f6;border:2px dashed #d1d5db;display:flex;align-items:center;justify-content:center;overflow:hidden;cursor:pointer;transition:border-color .2s,background .2s}
.drop-zone.drag-over{border-color:#6366f1;background:#eef2ff}
.drop-zone img{max-width:100%;max-height:100%;object-fit:contain}
.loader{border:8px solid #f3f3f3;border-top:8px solid #6366f1;border-radius:50%;width:56px;height:56px;animation:spin 1.2s linear infinite}
@keyframes spin{0%{transform:rotate(0)}100%{transform:rotate(360deg)}}
</style>
</head>
<body class="bg-gray-50 text-gray-800">
<div class="container mx-auto p-4 md:p-8 max-w-5xl">
<header class="text-center mb-8">
<h1 class="text-3xl md:text-4xl font-bold text-gray-900">Fashion Image Generator</h1>
<p class="text-gray-600 mt-2">服の画像と人物の画像をアップロードして、コーディネート画像を生成しよう。</p>
</header>
<main class="bg-white p-6 md:p-8 rounded-2xl shadow-lg">
<div class="grid grid-cols-1 md:grid-cols-2 gap-6 mb-6">
<div>
<label class="block text-lg font-semibold mb-2 text-gray-700">1. 服の画像</label>
<div id="outfit-zone" class="drop-zone rounded-lg mb-3"><span class="text-gray-500">クリックまたはドラッグ&amp;ドロップ</span></div>
<input type="file" id="outfit-input" accept="image/*" class="hidden">
<div class="flex items-center gap-2">
<span id="outfit-name" class="text-sm text-gray-500"></span>
<button type="button" id="outfit-clear" class="hidden text-sm text-red-600 hover:text-red-800">削除</button>
</div>
</div>
<div>
<label class="block text-lg font-semibold mb-2 text-gray-700">2. 人物の画像</label>
<div id="person-zone" class="drop-zone rounded-lg mb-3"><span class="text-gray-500">クリックまたはドラッグ&amp;ドロップ</span></div>
<input type="file" id="person-input" accept="image/*" class="hidden">
<div class="flex items-center gap-2">
<span id="person-name" class="text-sm text-gray-500"></span>
<button type="button" id="person-clear" class="hidden text-sm text-red-600 hover:text-red-800">削除</button>
</div>
</div>
</div>

<div class="text-center mb-8">
<button type="button" id="generate-btn" disabled
class="bg-gradient-to-r from-indigo-500 to-blue-600 text-white font-bold py-4 px-12 rounded-full hover:shadow-xl transform hover:-translate-y-0.5 transition-all text-lg disabled:opacity-50 disabled:cursor-not-allowed disabled:transform-none">
画像を生成
</button>
</div>

<div id="loading" class="hidden flex flex-col items-center mb-8">
<div class="loader mb-3"></div>
<p class="text-gray-600">生成中です。しばらくお待ちください...</p>
</div>

<div id="result-section" class="mt-10 hidden">
<h2 class="text-2xl font-bold text-center mb-4 text-gray-800">生成結果</h2>
<div id="result-display" class="drop-zone rounded-lg bg-green-50" style="cursor:default"></div>
<div class="text-center mt-4">
<button type="button" id="download-btn"
class="px-6 py-2 rounded-lg bg-green-600 text-white hover:bg-green-700 shadow-sm">ダウンロード</button>
</div>
</div>
</main>
</div>
<script>
const MAX_SIZE = 10 * 1024 * 1024;
const generateBtn = document.getElementById('generate-btn');
const loading = document.getElementById('loading');
const resultSection = document.getElementById('result-section');
const resultDisplay = document.getElementById('result-display');
const downloadBtn = document.getElementById('download-btn');

let busy = false;
let resultBase64 = null;

// アップロード枠。ファイルが変わるたびに onChange を呼ぶ
function createUploadSlot(prefix, onChange) {
    const zone = document.getElementById(prefix + '-zone');
    const input = document.getElementById(prefix + '-input');
    const name = document.getElementById(prefix + '-name');
    const clearBtn = document.getElementById(prefix + '-clear');
    const slot = { file: null };

    function render() {
        if (!slot.file) {
            zone.innerHTML = '<span class="text-gray-500">クリックまたはドラッグ&amp;ドロップ</span>';
            name.textContent = '';
            clearBtn.classList.add('hidden');
            return;
        }
        name.textContent = slot.file.name;
        clearBtn.classList.remove('hidden');
        const reader = new FileReader();
        reader.onload = (e) => {
            zone.innerHTML = '<img src="' + e.target.result + '" alt="Preview">';
        };
        reader.readAsDataURL(slot.file);
    }

    function select(file) {
        if (!file) return;
        if (!file.type.startsWith('image/')) {
            alert('Please upload an image file');
            return;
        }
        if (file.size > MAX_SIZE) {
            alert('File size must be less than 10MB');
            return;
        }
        slot.file = file;
        render();
        onChange();
    }

    zone.addEventListener('click', () => input.click());
    input.addEventListener('change', (e) => {
        select(e.target.files[0]);
        input.value = '';
    });
    zone.addEventListener('dragover', (e) => {
        e.preventDefault();
        zone.classList.add('drag-over');
    });
    zone.addEventListener('dragleave', () => zone.classList.remove('drag-over'));
    zone.addEventListener('drop', (e) => {
        e.preventDefault();
        zone.classList.remove('drag-over');
        select(e.dataTransfer.files[0]);
    });
    clearBtn.addEventListener('click', () => {
        if (busy || !slot.file) return;
        slot.file = null;
        render();
        onChange();
    });
    return slot;
}

function updateState() {
    generateBtn.disabled = busy || !(outfitSlot.file && personSlot.file);
    loading.classList.toggle('hidden', !busy);
    document.getElementById('outfit-clear').disabled = busy;
    document.getElementById('person-clear').disabled = busy;
}

const outfitSlot = createUploadSlot('outfit', updateState);
const personSlot = createUploadSlot('person', updateState);

function readAsBase64(file) {
    return new Promise((resolve, reject) => {
        const reader = new FileReader();
        reader.onload = () => {
            const url = reader.result;
            resolve(url.substring(url.indexOf(',') + 1));
        };
        reader.onerror = () => reject(reader.error);
        reader.readAsDataURL(file);
    });
}

generateBtn.addEventListener('click', async () => {
    if (busy || !outfitSlot.file || !personSlot.file) return;
    // 生成中に枠が変更されても送信内容は変わらない
    const outfitFile = outfitSlot.file;
    const personFile = personSlot.file;
    busy = true;
    updateState();
    try {
        const [outfitBase64, personBase64] = await Promise.all([
            readAsBase64(outfitFile),
            readAsBase64(personFile),
        ]);
        const response = await fetch('/api/generate-image', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({
                outfitBase64: outfitBase64,
                outfitMimeType: outfitFile.type,
                personBase64: personBase64,
                personMimeType: personFile.type,
            }),
        });
        const data = await response.json().catch(() => ({}));
        if (!response.ok) {
            throw new Error(data.error || 'Request failed with status ' + response.status);
        }
        resultBase64 = data.imageData;
        resultDisplay.innerHTML = '<img src="data:image/png;base64,' + resultBase64 + '" alt="Generated">';
        resultSection.classList.remove('hidden');
    } catch (error) {
        console.error('Error generating image:', error);
        alert(error.message || 'Failed to generate image');
    } finally {
        busy = false;
        updateState();
    }
});

downloadBtn.addEventListener('click', () => {
    if (!resultBase64) return;
    const a = document.createElement('a');
    a.href = 'data:image/png;base64,' + resultBase64;
    a.download = 'fashion-image-' + Date.now() + '.png';
    document.body.appendChild(a);
    a.click();
    a.remove();
});
</script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Write([]byte(html))
}
