package invoice

import "strings"

const fence = "```"

// StripFences returns the content of the first ```json block, else of the first
// bare ``` block, trimmed. A reply without fences is only trimmed. An unclosed
// fence runs to the end of the reply.
func StripFences(reply string) string {
	s := reply
	if i := strings.Index(s, fence+"json"); i >= 0 {
		s = s[i+len(fence)+len("json"):]
		if j := strings.Index(s, fence); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	if i := strings.Index(s, fence); i >= 0 {
		s = s[i+len(fence):]
		if j := strings.Index(s, fence); j >= 0 {
			s = s[:j]
		}
		s = dropLanguageTag(s)
	}
	return strings.TrimSpace(s)
}

// dropLanguageTag removes an info string such as "JSON" or "javascript" that
// sits alone on the opening fence line.
func dropLanguageTag(s string) string {
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	tag := strings.TrimSpace(s[:nl])
	if tag == "" {
		return s
	}
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '+') {
			return s
		}
	}
	return s[nl+1:]
}
