package domain

type Category struct {
	ID   int64  `db:"id" json:"id" form:"id"`
	Name string `db:"name" json:"name" form:"name"`
	// Products is the back-reference filled by the catalog; never stored on the row.
	Products []Product `db:"-" json:"products,omitempty" form:"-"`
}

func (c *Category) PrimaryKey() int64       { return c.ID }
func (c *Category) SetPrimaryKey(id int64) { c.ID = id }

type Product struct {
	ID         int64   `db:"id" json:"id" form:"id"`
	Name       string  `db:"name" json:"name" form:"name"`
	Price      float64 `db:"price" json:"price" form:"price"`
	Stock      int     `db:"stock" json:"stock" form:"stock"`
	Color      string  `db:"color" json:"color" form:"color"`
	CategoryID int64   `db:"category_id" json:"categoryId" form:"category_id"`
}

func (p *Product) PrimaryKey() int64       { return p.ID }
func (p *Product) SetPrimaryKey(id int64) { p.ID = id }
