package service

import (
	"context"
	"errors"

	"github.com/hugohenrick/pdv-bebidas/internal/adapter/repository"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/customer"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/product"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/sale"
	"github.com/hugohenrick/pdv-bebidas/pkg/logger"
	"github.com/hugohenrick/pdv-bebidas/pkg/workflow"
)

var (
	// ErrDuplicateTransaction indica colisão no identificador de transação.
	// Mapeado separadamente para a API responder com mensagem específica.
	ErrDuplicateTransaction = errors.New("identificador de transação já utilizado")
)

// SaleService executa os fluxos de venda: criação com baixa de estoque e
// lançamento de fiado, e exclusão com os estornos correspondentes.
//
// Os passos de cada fluxo são chamadas independentes ao banco, na ordem
// descrita em cada método. Não há transação única envolvendo os passos nem
// desfazimento automático: quando um passo lateral falha depois de o
// registro principal ter sido gravado, o resultado parcial fica registrado
// no workflow.Record e no log para reconciliação manual.
type SaleService struct {
	saleRepo     sale.Repository
	productRepo  product.Repository
	customerRepo customer.Repository
	logger       logger.Logger
}

// NewSaleService cria uma nova instância de SaleService
func NewSaleService(
	saleRepo sale.Repository,
	productRepo product.Repository,
	customerRepo customer.Repository,
	logger logger.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateSale persiste uma venda com seus itens e aplica os efeitos no
// estoque e, quando fiado, no saldo do cliente. Passos, nesta ordem:
//
//  1. Inserir o registro da venda. Falha aborta tudo; identificador de
//     transação duplicado vira ErrDuplicateTransaction.
//  2. Inserir os itens. Falha aborta e é reportada; o registro da venda do
//     passo 1 permanece gravado (lacuna de consistência conhecida).
//  3. Baixar o estoque de cada item pela procedure atômica. Falhas aqui são
//     apenas logadas, item a item; o fluxo segue.
//  4. Se fiado, somar o total ao saldo do cliente pela procedure atômica.
//     Falha apenas logada.
//
// A venda retornada não carrega os itens. Carrinho vazio deve ser barrado
// por quem chama, antes de chegar aqui.
func (s *SaleService) CreateSale(ctx context.Context, sl *sale.Sale) (*sale.Sale, *workflow.Record, error) {
	record := workflow.NewRecord("create_sale")

	// Passo 1: registro da venda
	if err := s.saleRepo.Create(ctx, sl); err != nil {
		record.StepFailed("insert_sale", err)
		if errors.Is(err, repository.ErrSaleDuplicateTransaction) {
			return nil, record, ErrDuplicateTransaction
		}
		return nil, record, err
	}
	record.StepOK("insert_sale")

	// Passo 2: itens da venda
	if err := s.saleRepo.CreateItems(ctx, sl.Items); err != nil {
		record.StepFailed("insert_items", err)
		s.logger.Error("venda gravada sem itens, reconciliação manual necessária",
			"sale_id", sl.ID, "workflow", record.String())
		return nil, record, err
	}
	record.StepOK("insert_items")

	// Passo 3: baixa de estoque, item a item
	for _, item := range sl.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			record.StepFailed("decrement_stock:"+item.ProductID, err)
			s.logger.Error("falha ao baixar estoque do item",
				"sale_id", sl.ID, "product_id", item.ProductID, "quantity", item.Quantity, "error", err)
			continue
		}
		record.StepOK("decrement_stock:" + item.ProductID)
	}

	// Passo 4: lançamento do fiado
	if sl.IsCredit() {
		if err := s.customerRepo.AdjustCredit(ctx, sl.CustomerID, sl.TotalAmount); err != nil {
			record.StepFailed("increment_credit", err)
			s.logger.Error("falha ao lançar fiado do cliente",
				"sale_id", sl.ID, "customer_id", sl.CustomerID, "amount", sl.TotalAmount, "error", err)
		} else {
			record.StepOK("increment_credit")
		}
	} else {
		record.StepSkipped("increment_credit")
	}

	if record.HasFailures() {
		s.logger.Warn("venda criada com passos pendentes", "sale_id", sl.ID, "workflow", record.String())
	}

	created := *sl
	created.Items = nil
	return &created, record, nil
}

// DeleteSale remove uma venda e estorna os efeitos registrados. Passos:
//
//  1. Buscar a venda com os itens; não encontrada aborta.
//  2. Devolver ao estoque a quantidade de cada item pela procedure atômica.
//     Se a procedure falhar, cair para o caminho não atômico de leitura e
//     escrita (sujeito a lost update; contingência, não caminho principal).
//  3. Se a venda era fiado, abater o total do saldo do cliente (travado em
//     zero), com a mesma contingência.
//  4. Remover os itens da venda.
//  5. Remover o registro da venda.
//
// Falha nos passos 4 ou 5 aborta e é reportada; os estornos já aplicados
// nos passos 2 e 3 não são desfeitos. Retorna a venda como estava antes da
// exclusão, com os itens, para exibição.
func (s *SaleService) DeleteSale(ctx context.Context, id string) (*sale.Sale, *workflow.Record, error) {
	record := workflow.NewRecord("delete_sale")

	// Passo 1: snapshot da venda
	sl, err := s.saleRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		record.StepFailed("load_sale", err)
		return nil, record, err
	}
	record.StepOK("load_sale")

	// Passo 2: estorno de estoque, item a item
	for _, item := range sl.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Warn("procedure de estoque falhou, usando caminho não atômico",
				"sale_id", sl.ID, "product_id", item.ProductID, "error", err)

			if fbErr := s.productRepo.AdjustStockNonAtomic(ctx, item.ProductID, item.Quantity); fbErr != nil {
				record.StepFailed("restore_stock:"+item.ProductID, fbErr)
				s.logger.Error("falha ao estornar estoque do item",
					"sale_id", sl.ID, "product_id", item.ProductID, "quantity", item.Quantity, "error", fbErr)
				continue
			}
		}
		record.StepOK("restore_stock:" + item.ProductID)
	}

	// Passo 3: estorno do fiado
	if sl.IsCredit() {
		if err := s.customerRepo.AdjustCredit(ctx, sl.CustomerID, -sl.TotalAmount); err != nil {
			s.logger.Warn("procedure de saldo falhou, usando caminho não atômico",
				"sale_id", sl.ID, "customer_id", sl.CustomerID, "error", err)

			if fbErr := s.customerRepo.AdjustCreditNonAtomic(ctx, sl.CustomerID, -sl.TotalAmount); fbErr != nil {
				record.StepFailed("restore_credit", fbErr)
				s.logger.Error("falha ao estornar fiado do cliente",
					"sale_id", sl.ID, "customer_id", sl.CustomerID, "amount", sl.TotalAmount, "error", fbErr)
			} else {
				record.StepOK("restore_credit")
			}
		} else {
			record.StepOK("restore_credit")
		}
	} else {
		record.StepSkipped("restore_credit")
	}

	// Passo 4: remover os itens
	if err := s.saleRepo.DeleteItems(ctx, sl.ID); err != nil {
		record.StepFailed("delete_items", err)
		s.logger.Error("estornos aplicados mas itens não removidos, reconciliação manual necessária",
			"sale_id", sl.ID, "workflow", record.String())
		return nil, record, err
	}
	record.StepOK("delete_items")

	// Passo 5: remover a venda
	if err := s.saleRepo.Delete(ctx, sl.ID); err != nil {
		record.StepFailed("delete_sale", err)
		s.logger.Error("estornos aplicados mas venda não removida, reconciliação manual necessária",
			"sale_id", sl.ID, "workflow", record.String())
		return nil, record, err
	}
	record.StepOK("delete_sale")

	if record.HasFailures() {
		s.logger.Warn("venda removida com estornos pendentes", "sale_id", sl.ID, "workflow", record.String())
	}

	return sl, record, nil
}
