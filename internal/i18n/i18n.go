package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleRO = "ro-RO"
	LocaleEN = "en-US"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleRO

var catalogs = map[string]map[string]string{
	LocaleRO: messagesRO,
	LocaleEN: messagesEN,
}

// ResolveLocale 解析请求语言（query > header > Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := Normalize(c.Query("locale")); locale != "" {
		return locale
	}
	if locale := Normalize(c.GetHeader("X-Locale")); locale != "" {
		return locale
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := Normalize(lang); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// Normalize 归一化语言标签，未知语言返回空串
func Normalize(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case normalized == "":
		return ""
	case strings.HasPrefix(normalized, "ro"):
		return LocaleRO
	case strings.HasPrefix(normalized, "en"):
		return LocaleEN
	default:
		return ""
	}
}

// T 按语言查找文案，缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 查找文案并格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	template := T(locale, key)
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}
