package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// textRunPattern 匹配document.xml中的可见文本run
var textRunPattern = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// xmlEntityReplacer 还原document.xml里的转义字符
var xmlEntityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// extractDocBinary 提取Word文档的可见段落文本，以空格拼接
// 旧式.doc是CFB容器，docx库读不了，解析失败按约定降级为空文本
func (e *DocumentExtractor) extractDocBinary(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("打开Word文档失败: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	return docVisibleText(content), nil
}

// docVisibleText 从document.xml内容中抽取可见文本，按段落粒度拼接
// Word会把一个单词拆进多个run（修订标记、拼写检查边界都会切分），
// 段内run必须无缝连接，否则"JavaScript"会被拆成"Java Script"破坏整词匹配；
// 段落之间补一个空格作为词边界
func docVisibleText(content string) string {
	var builder strings.Builder
	for _, paragraph := range strings.Split(content, "</w:p>") {
		runs := textRunPattern.FindAllStringSubmatch(paragraph, -1)
		if len(runs) == 0 {
			continue
		}

		var text strings.Builder
		for _, run := range runs {
			text.WriteString(xmlEntityReplacer.Replace(run[1]))
		}
		if text.Len() == 0 {
			continue
		}
		builder.WriteString(text.String())
		builder.WriteString(" ")
	}
	return builder.String()
}
