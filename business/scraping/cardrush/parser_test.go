package cardrush

import (
	"testing"
)

const samplePage = `
<ul class="item_list">
  <li class="item_box">
    <a href="/phone/product/12345"><img src="/img/12345.jpg"></a>
    <p class="item_name">ミリアム SAR【状態A-】SV1a 205/165</p>
    <p class="item_price">1,480円</p>
  </li>
  <li class="item_box soldout">
    <a href="https://example.jp/product/12346"></a>
    <p class="item_name">ミリアム SAR【B】SV1a 205/165</p>
    <p class="item_price">980円</p>
    <span class="soldout_label">SOLD OUT</span>
  </li>
  <li class="item_box">
    <a href="/product/12347"></a>
    <p class="item_name">ミリアム SAR SV1a 205/165</p>
    <p class="item_price">2,000円</p>
  </li>
  <li class="item_box">
    <a href="/product/12348"></a>
    <p class="item_name">ミリアム SAR【A-】SV1a 205/165</p>
    <p class="item_price">準備中</p>
  </li>
</ul>
`

func TestParseListings(t *testing.T) {
	quotes := parseListings(samplePage, "https://shop.example.jp/")

	// Block 3 has no condition bracket, block 4 has no numeric price.
	if len(quotes) != 2 {
		t.Fatalf("parsed %d quotes, want 2", len(quotes))
	}

	first := quotes[0]
	if first.Condition != "A-" {
		t.Errorf("Condition = %q, want A-", first.Condition)
	}
	if first.PriceJPY != 1480 {
		t.Errorf("PriceJPY = %d, want 1480", first.PriceJPY)
	}
	if !first.InStock {
		t.Error("first listing has no sold-out marker and must be in stock")
	}
	if first.URL != "https://shop.example.jp/phone/product/12345" {
		t.Errorf("URL = %q, want base-joined product link", first.URL)
	}

	second := quotes[1]
	if second.Condition != "B" {
		t.Errorf("Condition = %q, want B", second.Condition)
	}
	if second.InStock {
		t.Error("sold-out listing must not be in stock")
	}
	if second.URL != "https://example.jp/product/12346" {
		t.Errorf("URL = %q, want the absolute link untouched", second.URL)
	}
}

func TestParseCondition_BracketVariants(t *testing.T) {
	// The shop writes the grade both with and without the 状態 prefix.
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"prefixed", "ミリアム SAR【状態A-】SV1a 205/165", "A-"},
		{"bare grade", "ミリアム SAR【A-】SV1a 205/165", "A-"},
		{"bare B", "ミリアム SAR【B】SV1a 205/165", "B"},
		{"ascii brackets", "Miriam SAR [B] SV1a 205/165", "B"},
		{"no bracket", "ミリアム SAR SV1a 205/165", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCondition(tt.in); got != tt.want {
				t.Errorf("parseCondition(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseListings_JapaneseSoldOutMarker(t *testing.T) {
	page := `
<li class="item_box">
  <a href="/product/1"></a>
  <p class="item_name">カード【状態B】</p>
  <p class="item_price">500円</p>
  <span>売切</span>
</li>`

	quotes := parseListings(page, "https://shop.example.jp")
	if len(quotes) != 1 {
		t.Fatalf("parsed %d quotes, want 1", len(quotes))
	}
	if quotes[0].InStock {
		t.Error("売切 marker must flag the listing out of stock")
	}
}

func TestParseListings_EmptyPage(t *testing.T) {
	if quotes := parseListings("<html><body>not found</body></html>", ""); len(quotes) != 0 {
		t.Errorf("parsed %d quotes from an empty page, want 0", len(quotes))
	}
}
