package schema

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// Tableize maps a class name to its conventional table name:
// "BlogPost" becomes "blog_posts".
func Tableize(className string) string {
	return Pluralize(strcase.ToSnake(className))
}

// Classify maps a table name to its conventional class name:
// "blog_posts" becomes "BlogPost".
func Classify(table string) string {
	return strcase.ToCamel(Singularize(table))
}

// Pluralize inflects the last word of a snake_case name, so uncountable
// words stay uncountable behind a prefix: "admin_sheep" is unchanged.
func Pluralize(name string) string {
	prefix, word := splitLastWord(name)
	return prefix + inflection.Plural(word)
}

// Singularize reverses Pluralize.
func Singularize(name string) string {
	prefix, word := splitLastWord(name)
	return prefix + inflection.Singular(word)
}

func splitLastWord(name string) (string, string) {
	i := strings.LastIndex(name, "_")
	return name[:i+1], name[i+1:]
}
