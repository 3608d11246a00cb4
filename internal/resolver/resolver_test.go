package resolver

import (
	"testing"

	"github.com/orgball2608/douyin-parser/pkg/errors"
)

func TestExtractShareURL(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{
			name: "Bare link",
			text: "https://v.douyin.com/iRNBho6u/",
			want: "https://v.douyin.com/iRNBho6u/",
		},
		{
			name: "Link inside share text",
			text: "7.43 复制打开抖音，看看【某某的作品】 https://v.douyin.com/iRNBho6u/ Mwu:/ 09/11",
			want: "https://v.douyin.com/iRNBho6u/",
		},
		{
			name: "Plain http",
			text: "see http://www.iesdouyin.com/share/video/123/",
			want: "http://www.iesdouyin.com/share/video/123/",
		},
		{
			name:    "Empty text",
			text:    "   ",
			wantErr: true,
		},
		{
			name:    "No link",
			text:    "just words here",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractShareURL(tt.text)
			if tt.wantErr {
				if !errors.IsInvalidInput(err) {
					t.Errorf("ExtractShareURL() error = %v, want invalid input", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractShareURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractShareURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateShareURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "https://v.douyin.com/abc/", wantErr: false},
		{url: "http://v.douyin.com/abc/", wantErr: false},
		{url: "ftp://v.douyin.com/abc/", wantErr: true},
		{url: "v.douyin.com/abc", wantErr: true},
		{url: "https:///path-only", wantErr: true},
		{url: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateShareURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShareURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
