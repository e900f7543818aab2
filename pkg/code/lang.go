package code

import "strings"

// lang holds the English and Chinese text of a message
// lang 保存消息的英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const (
	LangEN = "en"
	LangZH = "zh_cn"

	FALLBACK_LNG = LangEN
)

// Get returns the message in the requested language, falling back to English
// Get 返回指定语言的消息，缺失时回退到英文
func (l lang) Get(lng string) string {
	switch NormalizeLang(lng) {
	case LangZH:
		if l.zh_cn != "" {
			return l.zh_cn
		}
	}
	return l.en
}

// NormalizeLang maps Accept-Language style values onto a supported language
// NormalizeLang 将 Accept-Language 风格的值映射为支持的语言
func NormalizeLang(lng string) string {
	lng = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lng), "-", "_"))
	if i := strings.IndexAny(lng, ",;"); i >= 0 {
		lng = lng[:i]
	}
	switch {
	case lng == "zh" || strings.HasPrefix(lng, "zh_"):
		return LangZH
	case lng == "":
		return FALLBACK_LNG
	}
	return LangEN
}

// GetSupportedLanguages returns all languages a lang can carry
// GetSupportedLanguages 返回支持的语言
func GetSupportedLanguages() []string {
	return []string{LangEN, LangZH}
}
