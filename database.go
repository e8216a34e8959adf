package mochow

import (
	"context"
	"net/http"

	"github.com/hupe1980/mochow/model"
)

// Database is a handle on a database. It is obtained from
// Client.Database or Client-side construction via CreateDatabase
// followed by Database, and hands out Table handles.
type Database struct {
	client *Client
	name   string
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// CreateTableArgs describes the table to create.
type CreateTableArgs struct {
	Table              string
	Description        string
	Replication        int
	Partition          *model.Partition
	EnableDynamicField bool
	Schema             *model.Schema
}

type createTableRequest struct {
	Database           string           `json:"database"`
	Table              string           `json:"table"`
	Description        string           `json:"description,omitempty"`
	Replication        int              `json:"replication"`
	Partition          *model.Partition `json:"partition"`
	EnableDynamicField bool             `json:"enableDynamicField"`
	Schema             *model.Schema    `json:"schema"`
}

// CreateTable creates a table and returns its handle. Creation is
// asynchronous; poll DescribeTable until the state is TableStateNormal
// before writing rows.
func (d *Database) CreateTable(ctx context.Context, args *CreateTableArgs, optFns ...CallOption) (*Table, error) {
	if args == nil {
		return nil, NewClientError("create table args are nil")
	}
	if args.Table == "" {
		return nil, NewClientError("table name is empty")
	}
	if args.Schema == nil {
		return nil, NewClientError("table schema is nil")
	}
	if args.Partition == nil {
		return nil, NewClientError("table partition is nil")
	}

	body := createTableRequest{
		Database:           d.name,
		Table:              args.Table,
		Description:        args.Description,
		Replication:        args.Replication,
		Partition:          args.Partition,
		EnableDynamicField: args.EnableDynamicField,
		Schema:             args.Schema,
	}
	if err := d.client.send(ctx, "createTable", http.MethodPost, pathTable,
		map[string]string{"create": ""}, body, nil, optFns); err != nil {
		return nil, err
	}
	return &Table{client: d.client, database: d.name, name: args.Table}, nil
}

// DropTable deletes a table and all of its rows and indexes.
func (d *Database) DropTable(ctx context.Context, table string, optFns ...CallOption) error {
	if table == "" {
		return NewClientError("table name is empty")
	}
	params := map[string]string{
		"database": d.name,
		"table":    table,
	}
	return d.client.send(ctx, "dropTable", http.MethodDelete, pathTable,
		params, nil, nil, optFns)
}

// DescribeTable returns the description of a table including its
// schema, state and aliases.
func (d *Database) DescribeTable(ctx context.Context, table string, optFns ...CallOption) (*model.TableDescription, error) {
	if table == "" {
		return nil, NewClientError("table name is empty")
	}
	body := struct {
		Database string `json:"database"`
		Table    string `json:"table"`
	}{Database: d.name, Table: table}

	var resp model.DescribeTableResponse
	if err := d.client.send(ctx, "descTable", http.MethodPost, pathTable,
		map[string]string{"desc": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	if resp.Table == nil {
		return nil, NewClientError("describe table response has no table")
	}
	return resp.Table, nil
}

// ListTables returns the names of all tables in the database.
func (d *Database) ListTables(ctx context.Context, optFns ...CallOption) ([]string, error) {
	body := struct {
		Database string `json:"database"`
	}{Database: d.name}

	var resp model.ListTablesResponse
	if err := d.client.send(ctx, "listTables", http.MethodPost, pathTable,
		map[string]string{"list": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

// Table returns a handle for an existing table. The existence is
// verified against the service.
func (d *Database) Table(ctx context.Context, table string, optFns ...CallOption) (*Table, error) {
	if _, err := d.DescribeTable(ctx, table, optFns...); err != nil {
		return nil, err
	}
	return &Table{client: d.client, database: d.name, name: table}, nil
}
