package identity

import "strings"

// BuildARN constructs the Amazon Resource Name for an IAM user:
// arn:aws:iam:<rootID>:user[/<iamPath>]/<name>. Unlike a general-purpose AWS
// ARN (partition:service:region:account:resource, five fields), these ARNs
// never carry a region.
func BuildARN(rootID, iamPath, name string) string {
	var b strings.Builder
	b.WriteString("arn:aws:iam:")
	b.WriteString(rootID)
	b.WriteString(":user")
	if p := trimIAMPath(iamPath); p != "" && p != "/" {
		b.WriteString(p)
	}
	b.WriteByte('/')
	b.WriteString(name)
	return b.String()
}

// cleanIAMPath normalizes an IAM path, defaulting to "/".
func cleanIAMPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// trimIAMPath removes the trailing slash cleanIAMPath adds, for storage and
// display (the persisted default is "/", not "").
func trimIAMPath(p string) string {
	p = cleanIAMPath(p)
	if p == "/" {
		return "/"
	}
	return strings.TrimSuffix(p, "/")
}
