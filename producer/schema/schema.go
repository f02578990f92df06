// Package schema reflects ActiveRecord models from a live SQLite schema.
//
// A model file app/models/admin/blog_post.rb maps to class BlogPost in
// namespace Admin, backed by table blog_posts. Every column produces a getter
// and a setter; foreign keys produce belongs_to readers on the owning model
// and has_many readers on the referenced one.
//
// Only files under app/models/ are considered. Everything else contributes
// nothing and is not an error.
package schema

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/logger"
	"github.com/teranos/typeweaver/producer"
)

const (
	modelsDir = "app/models/"

	// BaseClass is the superclass of every reflected model
	BaseClass = "ApplicationRecord"

	// CollectionProxy is the return type of has_many readers
	CollectionProxy = "ActiveRecord::Associations::CollectionProxy"
)

// Queries issued against the database, in the order Scan runs them.
const (
	QueryTableExists = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	QueryColumns     = `SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`
	QueryForeignKeys = `SELECT "from", "table" FROM pragma_foreign_key_list(?) ORDER BY id, seq`
	QueryTables      = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
)

// Model identifies the class and table a model file maps to.
type Model struct {
	Name      string
	Namespace string
	Table     string
}

// ModelFromPath derives the model for a file under app/models/. It returns
// false for files outside app/models/, concerns and ApplicationRecord itself.
func ModelFromPath(path string) (Model, bool) {
	slashed := filepath.ToSlash(path)
	i := strings.LastIndex(slashed, modelsDir)
	if i < 0 || !strings.HasSuffix(slashed, ".rb") {
		return Model{}, false
	}

	rel := strings.TrimSuffix(slashed[i+len(modelsDir):], ".rb")
	segments := strings.Split(rel, "/")
	if segments[0] == "concerns" || rel == "application_record" {
		return Model{}, false
	}

	for i, s := range segments {
		segments[i] = strcase.ToCamel(s)
	}

	m := Model{Name: segments[len(segments)-1]}
	if len(segments) > 1 {
		m.Namespace = segments[len(segments)-2]
	}
	m.Table = Tableize(m.Name)
	return m, true
}

// Column is one row of pragma_table_info.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// ForeignKey is one row of pragma_foreign_key_list.
type ForeignKey struct {
	From  string
	Table string
}

// Reflector implements producer.Producer for the rails source
type Reflector struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// New creates a reflector over an open database. The caller owns db.
func New(db *sql.DB, log *zap.SugaredLogger) *Reflector {
	return &Reflector{db: db, log: log}
}

// Kind returns producer.Rails
func (r *Reflector) Kind() producer.Kind {
	return producer.Rails
}

// Scan adds the model class for path, if path is a model file.
func (r *Reflector) Scan(ctx context.Context, path string, g *ir.TypeGraph) error {
	model, ok := ModelFromPath(path)
	if !ok {
		return nil
	}

	c, err := r.Reflect(ctx, model)
	if err != nil {
		return errors.Wrapf(err, "reflect %s", path)
	}

	g.AddClass(c)
	r.log.Debugw("Reflected model",
		logger.FieldProducer, producer.Rails.String(),
		logger.FieldFile, path,
		logger.FieldEntity, c.FullName(),
		logger.FieldCount, len(c.Methods))
	return nil
}

// Reflect builds the class for model from its table. A missing table is an
// errors.ErrNotFound.
func (r *Reflector) Reflect(ctx context.Context, model Model) (*ir.Class, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, QueryTableExists, model.Table).Scan(&count); err != nil {
		return nil, errors.Wrapf(err, "failed to look up table %s", model.Table)
	}
	if count == 0 {
		return nil, errors.NewNotFoundError("table %s for model %s", model.Table, model.Name)
	}

	columns, err := r.Columns(ctx, model.Table)
	if err != nil {
		return nil, err
	}
	foreignKeys, err := r.ForeignKeys(ctx, model.Table)
	if err != nil {
		return nil, err
	}
	referencing, err := r.referencingTables(ctx, model.Table)
	if err != nil {
		return nil, err
	}

	c := ir.NewClass(model.Name, BaseClass, model.Namespace)

	for _, col := range columns {
		rubyType := RubyType(col.Type)

		getter := ir.NewMethod(col.Name)
		getter.SetReturnType(&ir.TypeRef{Name: rubyType, Nullable: !col.NotNull && !col.PrimaryKey})
		c.AddMethod(getter)

		setter := ir.NewMethod(col.Name + "=")
		setter.AddParameter(&ir.Parameter{Name: "value", Type: ir.NewTypeRef(rubyType), Kind: ir.Required})
		c.AddMethod(setter)
	}

	// belongs_to
	for _, fk := range foreignKeys {
		m := ir.NewMethod(associationName(fk))
		m.SetReturnType(ir.NullableTypeRef(Classify(fk.Table)))
		c.AddMethod(m)
	}

	// has_many
	for _, table := range referencing {
		m := ir.NewMethod(table)
		m.SetReturnType(ir.NewTypeRef(CollectionProxy))
		c.AddMethod(m)
	}

	return c, nil
}

// Columns lists the columns of table in declaration order.
func (r *Reflector) Columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := r.db.QueryContext(ctx, QueryColumns, table)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read columns of %s", table)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			col          Column
			notNull, pk  int64
			declaredType sql.NullString
		)
		if err := rows.Scan(&col.Name, &declaredType, &notNull, &pk); err != nil {
			return nil, errors.Wrapf(err, "failed to scan column of %s", table)
		}
		col.Type = declaredType.String
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		columns = append(columns, col)
	}
	return columns, errors.Wrapf(rows.Err(), "failed to read columns of %s", table)
}

// ForeignKeys lists the foreign keys declared on table.
func (r *Reflector) ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	rows, err := r.db.QueryContext(ctx, QueryForeignKeys, table)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read foreign keys of %s", table)
	}
	defer rows.Close()

	var keys []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.From, &fk.Table); err != nil {
			return nil, errors.Wrapf(err, "failed to scan foreign key of %s", table)
		}
		keys = append(keys, fk)
	}
	return keys, errors.Wrapf(rows.Err(), "failed to read foreign keys of %s", table)
}

// referencingTables returns the other tables holding a foreign key into
// table, sorted by name.
func (r *Reflector) referencingTables(ctx context.Context, table string) ([]string, error) {
	tables, err := r.tables(ctx)
	if err != nil {
		return nil, err
	}

	var referencing []string
	for _, other := range tables {
		if other == table {
			continue
		}
		keys, err := r.ForeignKeys(ctx, other)
		if err != nil {
			return nil, err
		}
		for _, fk := range keys {
			if fk.Table == table {
				referencing = append(referencing, other)
				break
			}
		}
	}
	return referencing, nil
}

func (r *Reflector) tables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, QueryTables)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan table name")
		}
		tables = append(tables, name)
	}
	return tables, errors.Wrap(rows.Err(), "failed to list tables")
}

// associationName is the belongs_to reader for fk: "author_id" becomes
// "author". Keys not ending in _id fall back to the singular table name.
func associationName(fk ForeignKey) string {
	if name := strings.TrimSuffix(fk.From, "_id"); name != fk.From && name != "" {
		return name
	}
	return Singularize(fk.Table)
}

// RubyType maps a declared SQLite column type to a Ruby class name.
// Size and precision suffixes are ignored: "varchar(255)" is a string.
func RubyType(declared string) string {
	t := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}

	switch t {
	case "string", "text", "varchar", "char", "character varying":
		return "String"
	case "integer", "bigint", "int", "smallint":
		return "Integer"
	case "float", "decimal", "real", "numeric", "double", "double precision":
		return "Float"
	case "boolean", "bool":
		return "TrueClass | FalseClass"
	case "datetime", "timestamp":
		return "Time"
	case "date":
		return "Date"
	case "json", "jsonb":
		return "Hash"
	default:
		return "Object"
	}
}
