package clinchpad

import "context"

// Users returns the account's members.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}
