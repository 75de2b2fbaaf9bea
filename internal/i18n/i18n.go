// Package i18n 提供诊断消息的多语言支持
//
// 所有词法、语法、静态分析和运行时错误的文本都通过 T 获取，
// 默认英文；配置 diagnostics.language = "zh" 时切换为中文。
package i18n

import (
	"fmt"
	"sort"
	"sync"
)

// Language 语言类型
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// 全局语言设置
var (
	currentLang Language = LangEnglish
	mu          sync.RWMutex
)

// SetLanguage 设置当前语言
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	currentLang = lang
}

// SetLanguageFromString 从字符串设置语言，无法识别时回退到英文
func SetLanguageFromString(lang string) {
	switch lang {
	case "zh", "zh-cn", "zh-tw", "zh-hk", "chinese":
		SetLanguage(LangChinese)
	default:
		SetLanguage(LangEnglish)
	}
}

// GetLanguage 获取当前语言
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

func catalogue(lang Language) map[string]string {
	switch lang {
	case LangChinese:
		return messagesZH
	default:
		return messagesEN
	}
}

// T 翻译消息（支持格式化参数）
func T(msgID string, args ...interface{}) string {
	mu.RLock()
	lang := currentLang
	mu.RUnlock()

	msg, ok := catalogue(lang)[msgID]
	if !ok {
		// 回退到英文
		msg, ok = messagesEN[msgID]
	}
	if !ok {
		// 找不到翻译则返回原始 ID
		return msgID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Missing 返回某种语言中缺失的消息 ID（测试使用）
func Missing(lang Language) []string {
	table := catalogue(lang)
	var out []string
	for id := range messagesEN {
		if _, ok := table[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
