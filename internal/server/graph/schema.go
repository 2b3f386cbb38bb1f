package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
)

// NewSchema builds the executable schema around the given root resolver.
//
// Object types resolve their scalar fields from the models' json tags; only
// the relationship fields (User.todos, Todo.user) carry explicit resolvers,
// so relations are fetched lazily per field rather than pre-joined.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":  &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.String},
			"role":  &graphql.Field{Type: graphql.String},
		},
	})

	todoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Todo",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":     &graphql.Field{Type: graphql.String},
			"completed": &graphql.Field{Type: graphql.Boolean},
		},
	})

	// The relationship fields are circular, so they are attached after both
	// object types exist.
	userType.AddFieldConfig("todos", &graphql.Field{
		Type: graphql.NewList(todoType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, ok := p.Source.(*models.User)
			if !ok {
				return nil, nil
			}
			todos, err := r.todos.GetByUser(p.Context, user.ID)
			if err != nil {
				return nil, r.opError(p.Context, "User.todos", err)
			}
			return todos, nil
		},
	})

	// A todo whose owner was deleted resolves to a null user.
	todoType.AddFieldConfig("user", &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			todo, ok := p.Source.(*models.Todo)
			if !ok {
				return nil, nil
			}
			user, err := r.users.GetByID(p.Context, todo.UserID)
			if err != nil {
				return nil, r.opError(p.Context, "Todo.user", err)
			}
			if user == nil {
				return nil, nil
			}
			return user, nil
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: userType},
		},
	})

	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"role":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	// Both credentials are optional at the schema level; the service reports
	// the missing-credentials failure itself.
	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	userUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"role":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	todoInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TodoInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"completed": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	todoUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TodoUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"completed": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getAllUsers": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					users, err := r.users.GetAll(p.Context)
					if err != nil {
						return nil, r.opError(p.Context, "getAllUsers", err)
					}
					return users, nil
				},
			},
			"getUserById": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.users.GetByID(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, r.opError(p.Context, "getUserById", err)
					}
					if user == nil {
						return nil, nil
					}
					return user, nil
				},
			},
			"getAllTodos": &graphql.Field{
				Type: graphql.NewList(todoType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					todos, err := r.todos.GetAll(p.Context)
					if err != nil {
						return nil, r.opError(p.Context, "getAllTodos", err)
					}
					return todos, nil
				},
			},
			"getTodoById": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					todo, err := r.todos.GetByID(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, r.opError(p.Context, "getTodoById", err)
					}
					if todo == nil {
						return nil, nil
					}
					return todo, nil
				},
			},
			"getTodosByUser": &graphql.Field{
				Type: graphql.NewList(todoType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					todos, err := r.todos.GetByUser(p.Context, stringArg(p, "userId"))
					if err != nil {
						return nil, r.opError(p.Context, "getTodosByUser", err)
					}
					return todos, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputMap(p, "user")
					user, err := r.users.Register(p.Context, services.RegisterInput{
						Name:     str(in, "name"),
						Email:    str(in, "email"),
						Password: str(in, "password"),
						Role:     str(in, "role"),
					})
					if err != nil {
						return nil, r.opError(p.Context, "register", err)
					}
					return user, nil
				},
			},
			"login": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputMap(p, "user")
					payload, err := r.users.Login(p.Context, str(in, "email"), str(in, "password"))
					if err != nil {
						return nil, r.opError(p.Context, "login", err)
					}
					return payload, nil
				},
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"user": &graphql.ArgumentConfig{Type: userUpdateInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputMap(p, "user")
					patch := models.UserPatch{
						Name:     optString(in, "name"),
						Email:    optString(in, "email"),
						Password: optString(in, "password"),
						Role:     optString(in, "role"),
					}
					principal := auth.PrincipalFromContext(p.Context)
					user, err := r.users.Update(p.Context, principal, stringArg(p, "id"), patch)
					if err != nil {
						return nil, r.opError(p.Context, "updateUser", err)
					}
					if user == nil {
						return nil, nil
					}
					return user, nil
				},
			},
			"deleteUser": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					principal := auth.PrincipalFromContext(p.Context)
					if err := r.users.Delete(p.Context, principal, stringArg(p, "id")); err != nil {
						return nil, r.opError(p.Context, "deleteUser", err)
					}
					return "User deleted successfully", nil
				},
			},
			"addTodo": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"todo":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(todoInput)},
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputMap(p, "todo")
					input := services.TodoInput{Title: str(in, "title")}
					if completed := optBool(in, "completed"); completed != nil {
						input.Completed = *completed
					}
					todo, err := r.todos.Add(p.Context, input, stringArg(p, "userId"))
					if err != nil {
						return nil, r.opError(p.Context, "addTodo", err)
					}
					return todo, nil
				},
			},
			"updateTodo": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"todo": &graphql.ArgumentConfig{Type: todoUpdateInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputMap(p, "todo")
					patch := models.TodoPatch{
						Title:     optString(in, "title"),
						Completed: optBool(in, "completed"),
					}
					todo, err := r.todos.Update(p.Context, stringArg(p, "id"), patch)
					if err != nil {
						return nil, r.opError(p.Context, "updateTodo", err)
					}
					if todo == nil {
						return nil, nil
					}
					return todo, nil
				},
			},
			"deleteTodo": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.todos.Delete(p.Context, stringArg(p, "id")); err != nil {
						return nil, r.opError(p.Context, "deleteTodo", err)
					}
					return "Todo deleted successfully", nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// stringArg returns a top-level string/ID argument ("" when absent).
func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

// inputMap returns a top-level input-object argument (nil when absent).
func inputMap(p graphql.ResolveParams, name string) map[string]interface{} {
	m, _ := p.Args[name].(map[string]interface{})
	return m
}

func str(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}

func optString(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func optBool(m map[string]interface{}, key string) *bool {
	if v, ok := m[key].(bool); ok {
		return &v
	}
	return nil
}
