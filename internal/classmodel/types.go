// Package classmodel implements the read-only package/class AST (spec.md §3,
// §4.1): a normalized, reflection-free view of a compiled application's
// packages and classes, built once by an external ClassImporter and never
// mutated afterward.
package classmodel

import "strings"

// Annotation is a single declared or meta-annotation, identified by its
// fully-qualified name, with its string attribute values (the only attribute
// shapes this domain inspects: `name`, `propagate`, and similar simple values).
type Annotation struct {
	FQN        string
	Attributes map[string]string
}

// AttributeList returns the (possibly empty, comma-joined) values of a
// list-shaped attribute such as NamedInterface's repeatable `name`.
func (a Annotation) AttributeList(key string) []string {
	v, ok := a.Attributes[key]
	if !ok || v == "" {
		return nil
	}
	return splitNonEmpty(v, ",")
}

// AttributeBool reports a boolean-shaped attribute, defaulting to def when absent.
func (a Annotation) AttributeBool(key string, def bool) bool {
	v, ok := a.Attributes[key]
	if !ok {
		return def
	}
	return v == "true"
}

// ClassRef is a direct class-to-class byte-code reference, as reported by
// the importer, with the originating member description (spec.md §4.3.4).
type ClassRef struct {
	Target      string // fully-qualified name of the referenced class
	Description string
}

// Field is a class's declared field.
type Field struct {
	Name        string
	Type        string // fully-qualified type name
	Annotations []Annotation
}

func (f Field) HasAnnotation(fqn string) bool { return hasAnnotation(f.Annotations, fqn) }
func (f Field) HasAnyOf(fqns []string) bool   { return hasAnyAnnotation(f.Annotations, fqns) }

// Parameter is a single constructor/method parameter.
type Parameter struct {
	Name string
	Type string
}

// Constructor is a declared constructor.
type Constructor struct {
	Parameters  []Parameter
	Annotations []Annotation
	Public      bool
}

func (c Constructor) HasAnnotation(fqn string) bool { return hasAnnotation(c.Annotations, fqn) }
func (c Constructor) HasAnyOf(fqns []string) bool   { return hasAnyAnnotation(c.Annotations, fqns) }

// Method is a declared method.
type Method struct {
	Name        string
	Parameters  []Parameter
	ReturnType  string // "" or "void" for no return value
	Annotations []Annotation
	Public      bool
	Synthetic   bool // compiler-generated; never treated as a real listener method
}

func (m Method) HasAnnotation(fqn string) bool { return hasAnnotation(m.Annotations, fqn) }
func (m Method) HasAnyOf(fqns []string) bool   { return hasAnyAnnotation(m.Annotations, fqns) }

// Class is a single compiled type: the unit the whole model is built from.
type Class struct {
	// FQN is the fully-qualified name, e.g. "com.acme.order.OrderService".
	FQN string
	// SimpleName is the trailing type name, e.g. "OrderService".
	SimpleName string
	// Package is the dotted package the class resides in.
	Package string
	Public  bool
	// Primitive marks core value types (spec.md's "or is primitive" core filter).
	Primitive bool

	SuperTypes []string // direct super class + implemented interfaces, FQNs
	Fields      []Field
	Constructors []Constructor
	Methods     []Method
	Annotations []Annotation

	// References lists direct class-to-class byte-code references outside
	// constructor/field/method declarations (spec.md §4.3.4).
	References []ClassRef
}

func (c Class) HasAnnotation(fqn string) bool { return hasAnnotation(c.Annotations, fqn) }
func (c Class) HasAnyOf(fqns []string) bool   { return hasAnyAnnotation(c.Annotations, fqns) }

// PackageName returns the class's package as a structured PackageName. When
// Package is empty, the package is taken from FQN (everything before its last
// dot).
func (c Class) PackageName() PackageName {
	if c.Package == "" {
		if i := strings.LastIndex(c.FQN, "."); i > 0 {
			return NewPackageName(c.FQN[:i])
		}
	}
	return NewPackageName(c.Package)
}

// IsCoreJava reports whether c's FQN is excluded from dependency targets per
// spec.md §4.3's core-Java filter: "java." / "javax." prefix, or primitive.
func (c Class) IsCoreJava() bool {
	return IsCoreJavaName(c.FQN) || c.Primitive
}

// IsCoreJavaName applies the same filter directly to a fully-qualified name,
// for references that never resolved to a full Class record (e.g. java.lang.String).
func IsCoreJavaName(fqn string) bool {
	return hasPrefix(fqn, "java.") || hasPrefix(fqn, "javax.") || IsPrimitiveTypeName(fqn)
}

// IsPrimitiveTypeName reports whether a raw type name (as it appears on a
// constructor/field/method parameter, not a resolved Class) denotes a Java
// primitive or void, including array forms ("int[]").
func IsPrimitiveTypeName(name string) bool {
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
	}
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double", "void":
		return true
	}
	return false
}

func hasAnnotation(annotations []Annotation, fqn string) bool {
	for _, a := range annotations {
		if a.FQN == fqn {
			return true
		}
	}
	return false
}

func hasAnyAnnotation(annotations []Annotation, fqns []string) bool {
	for _, fqn := range fqns {
		if hasAnnotation(annotations, fqn) {
			return true
		}
	}
	return false
}

func hasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
