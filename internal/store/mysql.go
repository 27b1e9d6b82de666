package store

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gitlab.com/dirk.krummacker/contacts-api/internal/model"
)

// contactRow is the shape of a row in the contacts table. The id column holds the hex form of
// the ObjectID, so ids look the same to clients no matter which backend is in use.
type contactRow struct {
	Id string `db:"id"`
	model.ContactInput
}

// SQLContacts implements ContactStore on a MySQL table. The table is expected to exist; see
// scripts/mysql-contacts.sql.
type SQLContacts struct {
	db *sqlx.DB

	// Prepared statements offer a significant speed increase if executed many times.
	insert        *sqlx.NamedStmt
	selectAll     *sqlx.Stmt
	selectWhereId *sqlx.Stmt
	replace       *sqlx.NamedStmt
	deleteWhereId *sqlx.Stmt
}

var _ ContactStore = (*SQLContacts)(nil)

// MySQLDSN builds the connection string for the MySQL backend. clientFoundRows makes an UPDATE
// report matched rather than changed rows, so replacing a contact with identical values is
// not mistaken for a missing contact.
func MySQLDSN(host, user, password, dbName string) string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.User = user
	cfg.Passwd = password
	cfg.DBName = dbName
	cfg.ClientFoundRows = true
	return cfg.FormatDSN()
}

// OpenMySQL opens the database at dsn and prepares the statements of the backend.
func OpenMySQL(dsn string) (*SQLContacts, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	return NewSQLContacts(sqlDB)
}

// NewSQLContacts wraps sqlDB and prepares all statements. The database argument can be a real
// database for production use or a mock database within unit tests.
func NewSQLContacts(sqlDB *sql.DB) (*SQLContacts, error) {
	s := &SQLContacts{db: sqlx.NewDb(sqlDB, "mysql")}
	var err error
	s.insert, err = s.db.PrepareNamed(`
		INSERT INTO contacts (id, firstName, lastName, email, favoriteColor, birthday)
		VALUES (:id, :firstName, :lastName, :email, :favoriteColor, :birthday)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare insert")
	}
	s.selectAll, err = s.db.Preparex(`
		SELECT * FROM contacts ORDER BY id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare select all")
	}
	s.selectWhereId, err = s.db.Preparex(`
		SELECT * FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare select")
	}
	s.replace, err = s.db.PrepareNamed(`
		UPDATE contacts
		SET firstName = :firstName, lastName = :lastName, email = :email,
			favoriteColor = :favoriteColor, birthday = :birthday
		WHERE id = :id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare replace")
	}
	s.deleteWhereId, err = s.db.Preparex(`
		DELETE FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare delete")
	}
	return s, nil
}

// Close releases the underlying database.
func (s *SQLContacts) Close() error {
	return s.db.Close()
}

func (s *SQLContacts) List(ctx context.Context) ([]model.Contact, error) {
	var rows []contactRow
	if err := s.selectAll.SelectContext(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "select contacts")
	}
	contacts := make([]model.Contact, 0, len(rows))
	for _, row := range rows {
		contact, err := row.toContact()
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

func (s *SQLContacts) Get(ctx context.Context, id bson.ObjectID) (*model.Contact, error) {
	var rows []contactRow
	if err := s.selectWhereId.SelectContext(ctx, &rows, id.Hex()); err != nil {
		return nil, errors.Wrapf(err, "select contact %s", id.Hex())
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	contact, err := rows[0].toContact()
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *SQLContacts) Create(ctx context.Context, input *model.ContactInput) (bson.ObjectID, error) {
	id := bson.NewObjectID()
	if _, err := s.insert.ExecContext(ctx, contactRow{Id: id.Hex(), ContactInput: *input}); err != nil {
		return bson.NilObjectID, errors.Wrap(err, "insert contact")
	}
	return id, nil
}

func (s *SQLContacts) Replace(ctx context.Context, id bson.ObjectID, input *model.ContactInput) error {
	result, err := s.replace.ExecContext(ctx, contactRow{Id: id.Hex(), ContactInput: *input})
	if err != nil {
		return errors.Wrapf(err, "replace contact %s", id.Hex())
	}
	return expectOneRow(result)
}

func (s *SQLContacts) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := s.deleteWhereId.ExecContext(ctx, id.Hex())
	if err != nil {
		return errors.Wrapf(err, "delete contact %s", id.Hex())
	}
	return expectOneRow(result)
}

// expectOneRow turns a statement result that touched no row into ErrNotFound.
func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (row contactRow) toContact() (model.Contact, error) {
	id, err := bson.ObjectIDFromHex(row.Id)
	if err != nil {
		return model.Contact{}, errors.Wrapf(err, "stored id %q", row.Id)
	}
	return model.Contact{Id: id, ContactInput: row.ContactInput}, nil
}
