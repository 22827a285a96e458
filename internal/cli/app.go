package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mgandara/pizzastore/internal/item"
	"github.com/mgandara/pizzastore/internal/order"
	"github.com/mgandara/pizzastore/internal/store"
	"github.com/mgandara/pizzastore/internal/user"
)

// Session is the state of one authorized user: who they are plus an ID
// that tags their actions in the log. It is passed around explicitly;
// there is no global current-user variable.
type Session struct {
	ID    string
	Login string
}

// App owns the services and drives the menu loops. Every action handles
// its own failure: the error is printed and control returns to the menu
// that invoked it.
type App struct {
	p      *Prompter
	out    io.Writer
	log    *logrus.Logger
	users  *user.Service
	items  *item.Service
	stores store.Repository
	orders *order.Service
}

func NewApp(users *user.Service, items *item.Service, stores store.Repository,
	orders *order.Service, in io.Reader, out io.Writer, log *logrus.Logger) *App {
	return &App{
		p:      NewPrompter(in, out),
		out:    out,
		log:    log,
		users:  users,
		items:  items,
		stores: stores,
		orders: orders,
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) fail(err error) {
	a.println(err.Error())
}

// Run is the outer loop: create user, log in, or exit.
func (a *App) Run(ctx context.Context) {
	a.println("*******************************************************")
	a.println("              PizzaStore User Interface")
	a.println("*******************************************************")
	for !a.p.EOF() {
		a.println("MAIN MENU")
		a.println("---------")
		a.println("1. Create user")
		a.println("2. Log in")
		a.println("9. < EXIT")
		switch a.p.Choice() {
		case 1:
			a.createUser(ctx)
		case 2:
			if sess := a.logIn(ctx); sess != nil {
				a.userLoop(ctx, sess)
			}
		case 9:
			return
		default:
			if !a.p.EOF() {
				a.println("Unrecognized choice!")
			}
		}
	}
}

func (a *App) createUser(ctx context.Context) {
	username := a.p.NotEmpty("username")
	password := a.p.NotEmpty("password")
	phone := a.p.Line("phone number")
	if err := a.users.Register(ctx, username, password, phone); err != nil {
		a.fail(err)
		return
	}
	a.println("User created.")
}

func (a *App) logIn(ctx context.Context) *Session {
	username := a.p.NotEmpty("username")
	password := a.p.NotEmpty("password")
	login, err := a.users.Login(ctx, username, password)
	if err != nil {
		a.fail(err)
		return nil
	}
	return &Session{ID: uuid.NewString(), Login: login}
}

func (a *App) userLoop(ctx context.Context, sess *Session) {
	log := a.log.WithFields(logrus.Fields{"session": sess.ID, "login": sess.Login})
	log.Info("session started")
	for !a.p.EOF() {
		a.println("MAIN MENU")
		a.println("---------")
		a.println("1. View Profile")
		a.println("2. Update Profile")
		a.println("3. View Menu")
		a.println("4. Place Order")
		a.println("5. View Full Order ID History")
		a.println("6. View Past 5 Order IDs")
		a.println("7. View Order Information")
		a.println("8. View Stores")
		a.println("9. Update Order Status")
		a.println("10. Update Menu")
		a.println("11. Update User")
		a.println(".........................")
		a.println("20. Log out")
		switch a.p.Choice() {
		case 1:
			a.viewProfile(ctx, sess)
		case 2:
			a.updateProfile(ctx, sess)
		case 3:
			a.viewMenu(ctx)
		case 4:
			a.placeOrder(ctx, sess)
		case 5:
			a.viewAllOrders(ctx, sess)
		case 6:
			a.viewRecentOrders(ctx, sess)
		case 7:
			a.viewOrderInfo(ctx, sess)
		case 8:
			a.viewStores(ctx)
		case 9:
			a.updateOrderStatus(ctx, sess)
		case 10:
			a.updateMenu(ctx, sess)
		case 11:
			a.updateUser(ctx, sess)
		case 20:
			log.Info("session ended")
			return
		default:
			if !a.p.EOF() {
				a.println("Unrecognized choice!")
			}
		}
	}
}

func (a *App) showProfile(ctx context.Context, login string) bool {
	u, err := a.users.Profile(ctx, login)
	if err != nil {
		a.fail(err)
		return false
	}
	a.printf("Username:\t\t%s\n", u.Login)
	a.printf("Password:\t\t%s\n", u.Password)
	a.printf("User Role:\t\t%s\n", u.Role)
	a.printf("Favorite Item:\t\t%s\n", u.FavoriteItem)
	a.printf("Phone Number:\t\t%s\n", u.Phone)
	return true
}

func (a *App) viewProfile(ctx context.Context, sess *Session) {
	a.println("PROFILE")
	a.println("----------")
	a.showProfile(ctx, sess.Login)
}

func (a *App) updateProfile(ctx context.Context, sess *Session) {
	a.println("CHANGE PROFILE MENU")
	a.println("------------------")
	if !a.showProfile(ctx, sess.Login) {
		return
	}
	a.println("1. Change Favorite Item")
	a.println("2. Change Phone Number")
	a.println("3. Change Password")
	a.println("4. Return Home")
	var field string
	switch a.p.Choice() {
	case 1:
		field = user.FieldFavoriteItem
	case 2:
		field = user.FieldPhone
	case 3:
		field = user.FieldPassword
	case 4:
		return
	default:
		a.println("Unrecognized choice!")
		return
	}
	value := a.p.NotEmpty("new value")
	if err := a.users.EditOwnField(ctx, sess.Login, field, value); err != nil {
		a.fail(err)
		return
	}
	a.println("Profile updated.")
}

func (a *App) viewMenu(ctx context.Context) {
	a.println("1. Search by type")
	a.println("2. Search by price")
	a.println("3. Search all items")

	var f item.Filter
	switch a.p.Choice() {
	case 1:
		f.Type = a.chooseType()
	case 2:
		max, err := decimal.NewFromString(a.p.Numeric("the maximum cost (price under...)"))
		if err != nil {
			a.fail(err)
			return
		}
		f.MaxPrice = &max
	case 3:
	default:
		return
	}

	// Re-sorting keeps the filter and just re-issues the query.
	choice := 3
	for choice <= 3 {
		sort := item.SortNone
		if choice == 1 {
			sort = item.SortPriceDesc
		} else if choice == 2 {
			sort = item.SortPriceAsc
		}
		items, err := a.items.List(ctx, f, sort)
		if err != nil {
			a.fail(err)
		} else {
			for _, it := range items {
				a.printf("Name: \t\t\t%s\n", it.Name)
				a.printf("Ingredients: \t\t%s\n", it.Ingredients)
				a.printf("Type: \t\t\t%s\n", it.Type)
				a.printf("Cost: \t\t\t%s\n", it.Price.StringFixed(2))
				a.printf("Description: \t\t%s\n\n", it.Description)
			}
		}
		a.println("1. View by highest to lowest")
		a.println("2. View by lowest to highest")
		a.println("3. View unsorted")
		a.println("4. Exit")
		choice = a.p.Choice()
		if a.p.EOF() {
			return
		}
	}
}

func (a *App) chooseType() string {
	a.println("1. Entree")
	a.println("2. Sides")
	a.println("3. Drinks")
	switch a.p.Choice() {
	case 1:
		return item.TypeEntree
	case 2:
		return item.TypeSides
	default:
		return item.TypeDrinks
	}
}

func (a *App) placeOrder(ctx context.Context, sess *Session) {
	a.viewStores(ctx)
	storeID := a.p.PositiveInt("the store id of the store you would like to place an order at")

	items, err := a.items.List(ctx, item.Filter{}, item.SortNone)
	if err != nil {
		a.fail(err)
		return
	}
	a.println("Menu:")
	for _, it := range items {
		a.printf("Item: %s, Price: $%s, Description: %s\n",
			it.Name, it.Price.StringFixed(2), it.Description)
	}

	var cart order.Cart
	for {
		name := a.p.NotEmpty("the item that you want to add to your order")
		qty := a.p.PositiveInt("the quantity that you want of this item")
		if a.p.EOF() {
			return
		}
		cart = append(cart, order.Line{ItemName: name, Quantity: qty})
		if !a.p.YesNo("Do you want to order more items?") {
			break
		}
	}

	o, err := a.orders.Place(ctx, sess.Login, storeID, cart)
	if err != nil {
		a.fail(err)
		return
	}
	a.printf("Your order has been placed successfully! Order ID: %d, Total Price: $%s\n",
		o.ID, o.Total.StringFixed(2))
}

func (a *App) viewAllOrders(ctx context.Context, sess *Session) {
	orders, err := a.orders.History(ctx, sess.Login)
	if err != nil {
		a.fail(err)
		return
	}
	if len(orders) == 0 {
		a.println("You have no order history.")
		return
	}
	a.println("These are all of the orders you have ever made: ")
	a.listOrders(orders)
}

func (a *App) viewRecentOrders(ctx context.Context, sess *Session) {
	orders, err := a.orders.Recent(ctx, sess.Login)
	if err != nil {
		a.fail(err)
		return
	}
	if len(orders) == 0 {
		a.println("You have no order history.")
		return
	}
	a.println("Your 5 Most Recent Orders:")
	a.listOrders(orders)
}

func (a *App) listOrders(orders []order.Order) {
	for _, o := range orders {
		a.printf("Order ID: %d, Store ID: %d, Total Price: $%s, Timestamp: %s, Status: %s\n",
			o.ID, o.StoreID, o.Total.StringFixed(2), o.Timestamp, o.Status)
	}
}

func (a *App) viewOrderInfo(ctx context.Context, sess *Session) {
	id := a.p.PositiveInt("the Order ID of the order you want to view")
	if a.p.EOF() {
		return
	}
	o, lines, err := a.orders.Info(ctx, sess.Login, id)
	if err != nil {
		a.println("No order found with the given ID or you do not have permission to view it.")
		return
	}
	a.printf("Order ID: %d\nOrder Timestamp: %s\nTotal Price: $%s\nOrder Status: %s\n",
		o.ID, o.Timestamp, o.Total.StringFixed(2), o.Status)
	a.println("Items in this Order:")
	for _, ln := range lines {
		a.printf("- %s (Quantity: %d)\n", ln.ItemName, ln.Quantity)
	}
}

func (a *App) viewStores(ctx context.Context) {
	stores, err := a.stores.ListOpen(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	a.println("These are the open stores that you can place an order at: ")
	for _, st := range stores {
		a.printf("Store ID: %s, Address: %s, City: %s, State: %s, Review Score: %s\n",
			st.ID, st.Address, st.City, st.State, st.ReviewScore)
	}
}

func (a *App) updateOrderStatus(ctx context.Context, sess *Session) {
	id := a.p.PositiveInt("the Order ID of the order to update")
	if a.p.EOF() {
		return
	}
	a.printf("Statuses: %s, %s, %s\n",
		order.StatusIncomplete, order.StatusInProgress, order.StatusComplete)
	st := order.Status(a.p.NotEmpty("new status"))
	if err := a.orders.UpdateStatus(ctx, sess.Login, id, st); err != nil {
		a.fail(err)
		return
	}
	a.println("Order status updated.")
}

func (a *App) updateMenu(ctx context.Context, sess *Session) {
	ok, err := a.users.Authorize(ctx, sess.Login, user.RoleManager)
	if err != nil {
		a.fail(err)
		return
	}
	if !ok {
		a.println("You do not have permission to view this")
		return
	}

	a.println("1. Update Item")
	a.println("2. Remove Item")
	a.println("3. Add Item")
	a.println("4. Return Home")
	switch a.p.Choice() {
	case 1:
		a.updateItem(ctx, sess)
	case 2:
		name := a.p.NotEmpty("item name")
		if err := a.items.Remove(ctx, sess.Login, name); err != nil {
			a.fail(err)
			return
		}
		a.println("Item removed.")
	case 3:
		it := item.Item{
			Name:        a.p.NotEmpty("item name"),
			Ingredients: a.p.NotEmpty("ingredients"),
			Type:        a.p.NotEmpty("item type"),
			Description: a.p.Line("description"),
		}
		price, err := decimal.NewFromString(a.p.Numeric("price"))
		if err != nil {
			a.fail(err)
			return
		}
		it.Price = price
		if err := a.items.Add(ctx, sess.Login, it); err != nil {
			a.fail(err)
			return
		}
		a.println("Item added.")
	case 4:
		return
	default:
		a.println("Unrecognizable choice!")
	}
}

// updateItem is the attribute-selection sub-loop: pick an item by name,
// then repeatedly overwrite one attribute at a time. The item is re-read
// before every display so each edit shows up immediately.
func (a *App) updateItem(ctx context.Context, sess *Session) {
	var name string
	for {
		name = a.p.NotEmpty("item name ('q' to quit)")
		if name == "q" || a.p.EOF() {
			return
		}
		exists, err := a.items.Exists(ctx, name)
		if err != nil {
			a.fail(err)
			return
		}
		if exists {
			break
		}
		a.println("Item name doesn't exist.")
	}

	for !a.p.EOF() {
		it, err := a.items.Get(ctx, name)
		if err != nil {
			a.fail(err)
			return
		}
		a.printf("Name: %s\n", it.Name)
		a.printf("Ingredients: %s\n", it.Ingredients)
		a.printf("Type: %s\n", it.Type)
		a.printf("Price: %s\n", it.Price.StringFixed(2))
		a.printf("Description: %s\n\n", it.Description)

		a.println("1. Edit Ingredients")
		a.println("2. Edit Type")
		a.println("3. Edit Price")
		a.println("4. Edit Description")
		a.println("5. Exit")

		var field, value string
		switch a.p.Choice() {
		case 1:
			field, value = item.FieldIngredients, a.p.NotEmpty("new ingredients")
		case 2:
			field, value = item.FieldType, a.p.NotEmpty("new type")
		case 3:
			field, value = item.FieldPrice, a.p.Numeric("new price")
		case 4:
			field, value = item.FieldDescription, a.p.NotEmpty("new description")
		default:
			return
		}
		if err := a.items.UpdateField(ctx, sess.Login, name, field, value); err != nil {
			a.fail(err)
			return
		}
	}
}

func (a *App) updateUser(ctx context.Context, sess *Session) {
	ok, err := a.users.Authorize(ctx, sess.Login, user.RoleManager)
	if err != nil {
		a.fail(err)
		return
	}
	if !ok {
		a.println("You do not have permission")
		return
	}

	var target string
	for {
		target = a.p.NotEmpty("user")
		if a.p.EOF() {
			return
		}
		exists, err := a.users.TargetExists(ctx, target)
		if err != nil {
			a.fail(err)
			return
		}
		if exists {
			break
		}
		a.println("Invalid User!")
	}

	a.println("1. Change Favorite Item")
	a.println("2. Change Phone Number")
	a.println("3. Change Password")
	a.println("4. Change Login")
	a.println("5. Change Roles")
	a.println("6. Return Home")
	var field string
	switch a.p.Choice() {
	case 1:
		field = user.FieldFavoriteItem
	case 2:
		field = user.FieldPhone
	case 3:
		field = user.FieldPassword
	case 4:
		field = user.FieldLogin
	case 5:
		field = user.FieldRole
	case 6:
		return
	default:
		a.println("Unrecognizable choice!")
		return
	}
	value := a.p.NotEmpty(fmt.Sprintf("new %s", field))
	newIdentity, err := a.users.EditUserField(ctx, sess.Login, target, field, value)
	if err != nil {
		a.fail(err)
		return
	}
	// A manager renaming their own login keeps the session valid under
	// the new name.
	sess.Login = newIdentity
	a.println("User updated.")
}
