package book

import "bookcatalog/internal/query"

const (
	// ReadTag names the public read shape of a book.
	ReadTag query.Tag = "BookRead"
	// RowTag names the storage row of a book.
	RowTag query.Tag = "BookRow"
)

const (
	tableBooks     = "books"
	colID          = "id"
	colTitle       = "title"
	colAuthor      = "author"
	colGenre       = "genre"
	colPrice       = "price"
	colPublishDate = "publish_date"
	colDescription = "description"
)

var columns = []string{colID, colTitle, colAuthor, colGenre, colPrice, colPublishDate, colDescription}

// Mappings holds the property mappings the book service sorts with.
var Mappings = query.NewRegistry().MustRegister(ReadTag, RowTag, query.NewMapping(map[string]query.MappingValue{
	"id":          {DestinationFields: []string{colID}},
	"title":       {DestinationFields: []string{colTitle}},
	"author":      {DestinationFields: []string{colAuthor}},
	"genre":       {DestinationFields: []string{colGenre}},
	"price":       {DestinationFields: []string{colPrice}},
	"publishDate": {DestinationFields: []string{colPublishDate}},
	"description": {DestinationFields: []string{colDescription}},
	// Older books are "older", so sorting by age runs against the date.
	"age": {DestinationFields: []string{colPublishDate}, Revert: true},
}))

// ReadShape is the field table used to shape book responses.
var ReadShape = query.NewShape[Book]("Book").
	Field("id", func(b Book) query.Value { return query.Int(b.ID) }).
	Field("author", func(b Book) query.Value { return query.String(b.Author) }).
	Field("title", func(b Book) query.Value { return query.String(b.Title) }).
	Field("genre", func(b Book) query.Value { return query.String(b.Genre) }).
	Field("price", func(b Book) query.Value { return query.Float(b.Price) }).
	Field("publishDate", func(b Book) query.Value { return query.Time(b.PublishDate) }).
	Field("description", func(b Book) query.Value { return query.String(b.Description) })
